package faq

import "PawPalGolang/pkg/response"

var (
	ErrCategoryNotFound = response.NewError(404, "faq category not found")
	ErrFetchCategories  = response.NewError(500, "failed to fetch faq categories")
)
