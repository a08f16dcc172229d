package handlers

import "errors"

var (
	errImageType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	errImageSize = errors.New("image exceeds the 5MB limit")
)
