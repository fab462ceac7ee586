package menu

import "errors"

var (
	ErrMenuNotFound   = errors.New("menu not found")
	ErrAnchorNotFound = errors.New("anchor menu not found")
)
