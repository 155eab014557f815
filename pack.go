package atlaspack

// SizeItem is the minimal input accepted by PackLayout: a key and a
// content size, with no pixel data at all.
type SizeItem struct {
	Key    string
	Width  int
	Height int
}

// packWithFamily dispatches to the one-shot multipage driver or, when the
// caller selected FamilyAuto, to the candidate portfolio, per §4.6/§4.7.
func packWithFamily(items []packItem, cfg *PackerConfig) (*Atlas, error) {
	if cfg.Family == FamilyAuto {
		return runPortfolio(items, cfg)
	}
	return runDriver(items, cfg, cfg.Family)
}

// PackLayout packs bare sizes with no pixel data, per spec §6's
// pack_layout entry point. It never trims (there is nothing to trim) and
// never renders.
func PackLayout(items []SizeItem, cfg PackerConfig) (Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return Atlas{}, err
	}

	inputs := make([]LayoutItem, len(items))
	for i, it := range items {
		inputs[i] = LayoutItem{Key: it.Key, Width: it.Width, Height: it.Height}
	}

	packed, err := prepareLayoutItems(inputs, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	sortItems(packed, cfg.SortOrder)

	atlas, err := packWithFamily(packed, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	return *atlas, nil
}

// PackLayoutItems packs pre-measured items that may already carry a
// trimmed Source/SourceSize, per spec §6's pack_layout_items entry point.
func PackLayoutItems(items []LayoutItem, cfg PackerConfig) (Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return Atlas{}, err
	}

	packed, err := prepareLayoutItems(items, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	sortItems(packed, cfg.SortOrder)

	atlas, err := packWithFamily(packed, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	return *atlas, nil
}

// PackImages packs sprites with pixel data and, when cfg.Trim is set,
// trims transparent borders before placement, per spec §6's pack_images
// entry point. It returns only the layout; rendering to RGBA pages is a
// separate step left to the blit package so layout-only callers never pay
// for an image-compositing dependency.
func PackImages(items []InputItem, cfg PackerConfig) (Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return Atlas{}, err
	}

	packed, skipped, err := prepareItems(items, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	sortItems(packed, cfg.SortOrder)

	atlas, err := packWithFamily(packed, &cfg)
	if err != nil {
		return Atlas{}, err
	}
	atlas.Meta.Skipped = skipped
	return *atlas, nil
}

// vim: ts=4
