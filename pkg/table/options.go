package table

// Default cell geometry, matching the CLI flag defaults.
const (
	DefaultPinNameColumnWidth = 40.0
	DefaultUsageColumnWidth   = 80.0
	DefaultRowHeight          = 20.0
	DefaultColumnSpacing      = 0.0
)

// Options controls cell geometry and the span rule.
type Options struct {
	// PinNameColumnWidth is the width of the label-only sub-column.
	PinNameColumnWidth float64

	// UsageColumnWidth is the width of the usage sub-column.
	UsageColumnWidth float64

	// RowHeight is the height of every row.
	RowHeight float64

	// ColumnSpacing is the horizontal gap between repeated column blocks.
	ColumnSpacing float64

	// SpanPinNameWithoutUsage widens the name cell of a pin without a
	// usage to the full combined column width.
	SpanPinNameWithoutUsage bool
}

// DefaultOptions returns the default geometry with spanning disabled.
func DefaultOptions() Options {
	return Options{
		PinNameColumnWidth: DefaultPinNameColumnWidth,
		UsageColumnWidth:   DefaultUsageColumnWidth,
		RowHeight:          DefaultRowHeight,
		ColumnSpacing:      DefaultColumnSpacing,
	}
}

// withDefaults fills unset (zero) dimensions with the defaults.
// ColumnSpacing is left alone since zero is its default.
func (o Options) withDefaults() Options {
	if o.PinNameColumnWidth == 0 {
		o.PinNameColumnWidth = DefaultPinNameColumnWidth
	}
	if o.UsageColumnWidth == 0 {
		o.UsageColumnWidth = DefaultUsageColumnWidth
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	return o
}
