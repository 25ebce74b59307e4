// Package utils provides common utility functions for the catalog service.
// It includes helper functions for loose type conversion, slug generation,
// and other shared logic that doesn't fit into domain-specific packages.
package utils
