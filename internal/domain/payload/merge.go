package payload

// Merge overlays an override fragment onto a compiled document and
// returns the effective payload. Every path present in the override wins
// outright: scalars replace objects and objects replace scalars without
// any partial reconciliation. Paths absent from the override keep the
// base value. Neither input is mutated.
func Merge(base, override Document) Document {
	out := base.Clone()
	if out == nil {
		out = Document{}
	}
	mergeInto(map[string]any(out), map[string]any(override))
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeInto(dv, sv)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}
