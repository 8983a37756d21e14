package model

// Ptr returns a pointer to v. It is a convenience for building optional
// properties in code and tests:
//
//	p.Properties.Alignment = model.Ptr(model.AlignCenter)
func Ptr[T any](v T) *T {
	return &v
}
