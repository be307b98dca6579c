package profile

import (
	"errors"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Load(cat scenario.Category) ([]*Profile, error)
	Find(cat scenario.Category, country string, typ scenario.MethodType, name string) (*Profile, error)
	Save(*Profile) error
	Delete(cat scenario.Category, country string, typ scenario.MethodType, name string) error
}
