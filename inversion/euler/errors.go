package euler

import "errors"

// Deconvolution errors.
var (
	ErrInvalidWindow          = errors.New("euler: window size must be odd, >= 3 and fit inside the grid")
	ErrInvalidStructuralIndex = errors.New("euler: structural index must be positive and finite")
	ErrInvalidFilter          = errors.New("euler: filter fraction must be in (0, 1]")
	ErrEmptyFilterResult      = errors.New("euler: filter fraction keeps no estimates")
	ErrSingularSystem         = errors.New("euler: singular normal equations")
	ErrFieldsMismatch         = errors.New("euler: derivative grids do not match the field grid")
)
