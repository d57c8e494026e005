package query

// FilterUpdateFields filters a raw request body into a column update map.
//
// Keys listed in protected are stripped silently (immutable columns such as
// id and created_at). Every remaining key must appear in allowedFields, which
// maps JSON field names to database columns; keys outside the allow-list are
// returned in unknown so the caller can reject the request instead of
// interpolating arbitrary column names into the update.
func FilterUpdateFields(updates map[string]interface{}, allowedFields map[string]string, protected []string) (map[string]interface{}, []string) {
	filtered := make(map[string]interface{})
	var unknown []string

	for field, value := range updates {
		if isProtected(field, protected) {
			continue
		}
		dbField, allowed := allowedFields[field]
		if !allowed {
			unknown = append(unknown, field)
			continue
		}
		filtered[dbField] = value
	}

	return filtered, unknown
}

func isProtected(field string, protected []string) bool {
	for _, p := range protected {
		if field == p {
			return true
		}
	}
	return false
}
