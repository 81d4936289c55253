package listings

// Normalize maps user-facing filters onto the server's query parameters.
// Empty or zero-valued fields are omitted entirely rather than sent empty;
// an array field survives if any element is non-empty, and then carries all
// of its original elements. The function is pure, so equal filters always
// yield queries with equal keys.
func Normalize(f Filters) Query {
	q := make(Query)

	if f.Location != "" {
		q["location"] = ArrayValue([]string{f.Location})
	}
	if anyNonEmpty(f.Types) {
		q["type"] = ArrayValue(f.Types)
	}
	if f.Status != "" {
		q["status"] = StringValue(f.Status)
	}
	if f.Beds != 0 {
		q["bedrooms"] = IntValue(f.Beds)
	}
	if f.Baths != 0 {
		q["bathrooms"] = IntValue(f.Baths)
	}
	if f.SortBy != "" {
		q["sortBy"] = StringValue(f.SortBy)
	}
	if f.PriceFrom != 0 {
		q["minPrice"] = IntValue(f.PriceFrom)
	}
	if f.PriceTo != 0 {
		q["maxPrice"] = IntValue(f.PriceTo)
	}

	return q
}

func anyNonEmpty(elems []string) bool {
	for _, e := range elems {
		if e != "" {
			return true
		}
	}
	return false
}
