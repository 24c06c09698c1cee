package assets

import "errors"

var (
	ErrEmptyDataset = errors.New("dataset has no points of interest")
	ErrNoAsset      = errors.New("asset not found")
)
