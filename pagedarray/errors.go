package pagedarray

import "errors"

var (
	ErrAllocation     = errors.New("pagedarray: node allocation refused")
	ErrLengthOverflow = errors.New("pagedarray: length would exceed the index range")
)
