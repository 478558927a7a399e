package wpplanner

// Configuration constants from the solver's documented contract. Their
// literal values are part of that contract; changing them changes
// observable output.
const (
	WPMinFill        = 0.80
	WPGapThresh      = 0.95
	WPDepthStrict    = 2.0
	WPDepthRelaxed   = 8.0
	WPLoadbarGap     = 2.0
	WPStageHeightTol = 15.0
	WPAbsorbThresh   = 0.50

	widthTolerance = 0.5 // epsilon used throughout for "fits within truck width"
)
