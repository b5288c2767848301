package corpuscmd

// FeatureGates exposes runtime feature toggles required by corpus command
// handlers. Callers should supply closures that read from the runtime
// configuration so handlers stay decoupled from it while honouring flags.
type FeatureGates struct {
	IntegrityEnabled func() bool
	CatalogEnabled   func() bool
}

func (g FeatureGates) integrityEnabled() bool {
	if g.IntegrityEnabled == nil {
		return true
	}
	return g.IntegrityEnabled()
}

func (g FeatureGates) catalogEnabled() bool {
	if g.CatalogEnabled == nil {
		return true
	}
	return g.CatalogEnabled()
}
