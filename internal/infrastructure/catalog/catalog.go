package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
)

// FileName is the payment-type-profile list inside the data directory:
// one profile slug per line, blank lines and #-comments ignored.
const FileName = "ptp-list.txt"

// Catalog serves the known payment-type-profile names. The selected
// name feeds the X-EBANX-Custom-Payment-Type-Profile dispatch header.
type Catalog struct {
	dir    string
	logger logging.Logger
}

func New(dir string, logger logging.Logger) *Catalog {
	return &Catalog{dir: dir, logger: logger}
}

// List returns every catalogued profile name in file order. A missing
// file is seeded with the default set first.
func (c *Catalog) List() ([]string, error) {
	path := filepath.Join(c.dir, FileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := c.seed(path); err != nil {
			return nil, err
		}
		c.logger.Info("seeded ptp catalog", map[string]any{"file": path})
		data = []byte(seedList)
	} else if err != nil {
		return nil, fmt.Errorf("read ptp catalog: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// Filter returns the names containing the substring, case-insensitive.
// An empty filter returns everything.
func (c *Catalog) Filter(substring string) ([]string, error) {
	names, err := c.List()
	if err != nil {
		return nil, err
	}
	if substring == "" {
		return names, nil
	}

	needle := strings.ToLower(substring)
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out, nil
}

// Contains reports whether a name is catalogued.
func (c *Catalog) Contains(name string) (bool, error) {
	names, err := c.List()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *Catalog) seed(path string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(seedList), 0o644); err != nil {
		return fmt.Errorf("seed ptp catalog: %w", err)
	}
	return nil
}

// Default catalog shipped on first run, one slug per tested route.
const seedList = `# payment-type-profile catalog
visa-ng
mastercard-ng
visa-ke
mastercard-za
visa-eg
mpesa-ke
airtel-money-ke
mtn-momo-ng
bank-transfer-ng
cash-voucher-eg
`
