package upstream

import "encoding/json"

// FlexString accepts a JSON value that providers send inconsistently as
// either a number or a numeral-in-a-string (platform numbers, berth numbers,
// fares) and keeps it verbatim. Legitimate non-numeric placeholders like
// "N/A" survive untouched; null collapses to the empty string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// Raw number (or other scalar): keep the textual form as sent.
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
