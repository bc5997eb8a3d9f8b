package xtream

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Panels disagree about JSON types: the same field arrives as a
// number from one provider and a quoted string from the next, and a
// few serve booleans for flags. FlexInt and FlexString absorb those
// differences so the rest of the player sees one shape.

// FlexInt is an int that also decodes from numeric strings and bools.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = 0
		return nil
	case bytes.Equal(b, []byte("true")):
		*f = 1
		return nil
	case bytes.Equal(b, []byte("false")):
		*f = 0
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}
}

// FlexString is a string that also decodes from bare JSON numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = FlexString(n.String())
		return nil
	}
}

// Category is one entry of get_live_categories.
type Category struct {
	ID       FlexString `json:"category_id"`
	Name     string     `json:"category_name"`
	ParentID FlexInt    `json:"parent_id"`
}

// Stream is one entry of get_live_streams.
type Stream struct {
	Num          FlexInt    `json:"num"`
	Name         string     `json:"name"`
	Icon         string     `json:"stream_icon"`
	ID           FlexInt    `json:"stream_id"`
	EPGChannelID string     `json:"epg_channel_id"`
	CategoryID   FlexString `json:"category_id"`
	CategoryIDs  []FlexInt  `json:"category_ids"`
}

// categoryKeys returns every category id the stream claims, without
// duplicates.
func (s Stream) categoryKeys() []string {
	var keys []string
	add := func(k string) {
		if k == "" {
			return
		}
		for _, have := range keys {
			if have == k {
				return
			}
		}
		keys = append(keys, k)
	}
	add(string(s.CategoryID))
	for _, id := range s.CategoryIDs {
		add(strconv.Itoa(int(id)))
	}
	return keys
}
