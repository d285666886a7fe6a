package utils

import "time"

const dateLayout = "2006-01-02"

// ParseOptionalDate aceita AAAA-MM-DD ou RFC 3339; vazio retorna nil
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if date, err := time.Parse(dateLayout, value); err == nil {
		return &date, nil
	}

	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}

	date = date.UTC()
	return &date, nil
}
