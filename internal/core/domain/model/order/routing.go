package order

import "fmt"

// RoutingSummary is the derived custody picture of an order, used by list views.
type RoutingSummary struct {
	Staff        int
	Manufacturer int
	Client       int
	AllCompleted bool
}

// Label renders the summary as "all with staff", "all with manufacturer" or
// "split (a staff / b manufacturer)". Products with the client are appended to
// a split label.
func (r RoutingSummary) Label() string {
	total := r.Staff + r.Manufacturer + r.Client
	switch {
	case total == 0:
		return "no products"
	case r.Staff == total:
		return "all with staff"
	case r.Manufacturer == total:
		return "all with manufacturer"
	case r.Client == total:
		return "all with client"
	case r.Client > 0:
		return fmt.Sprintf("split (%d staff / %d manufacturer / %d client)", r.Staff, r.Manufacturer, r.Client)
	default:
		return fmt.Sprintf("split (%d staff / %d manufacturer)", r.Staff, r.Manufacturer)
	}
}

// CompletionLabel is "all completed" when every product is completed, empty otherwise.
func (r RoutingSummary) CompletionLabel() string {
	if r.AllCompleted {
		return "all completed"
	}
	return ""
}
