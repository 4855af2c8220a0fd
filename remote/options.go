// Package remote maps option payloads fetched by a UI for a field's
// dataSource into static options. It performs no I/O.
package remote

import (
	"strconv"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/source"
)

// Default record keys when the data source names none.
const (
	DefaultLabelKey = "label"
	DefaultValueKey = "value"
)

// envelopes are object keys that may carry the option list, in lookup order.
var envelopes = []string{"data", "items", "results"}

// Keys returns the label and value keys of ds, falling back to the defaults.
func Keys(ds *bf.DataSource) (labelKey, valueKey string) {
	labelKey, valueKey = DefaultLabelKey, DefaultValueKey
	if ds == nil || ds.Pagination == nil {
		return labelKey, valueKey
	}
	if ds.Pagination.LabelKey != "" {
		labelKey = ds.Pagination.LabelKey
	}
	if ds.Pagination.ValueKey != "" {
		valueKey = ds.Pagination.ValueKey
	}
	return labelKey, valueKey
}

// ExtractOptions reads options from payload: either a list of records or an
// object carrying one under data, items or results. A record contributes an
// option when its label is a string or number and its value a string, number
// or boolean; other records are skipped.
func ExtractOptions(payload any, labelKey, valueKey string) []bf.StaticOption {
	if labelKey == "" {
		labelKey = DefaultLabelKey
	}
	if valueKey == "" {
		valueKey = DefaultValueKey
	}
	out := []bf.StaticOption{}
	for _, item := range candidates(source.Normalize(payload)) {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		label, ok := labelText(rec[labelKey])
		if !ok {
			continue
		}
		switch v := rec[valueKey].(type) {
		case string, bool, float64:
			out = append(out, bf.StaticOption{Label: label, Value: v})
		}
	}
	return out
}

// ExtractJSON decodes a JSON payload and extracts options for ds.
func ExtractJSON(data []byte, ds *bf.DataSource) ([]bf.StaticOption, error) {
	payload, err := source.JSON(data)
	if err != nil {
		return nil, err
	}
	labelKey, valueKey := Keys(ds)
	return ExtractOptions(payload, labelKey, valueKey), nil
}

// HasMore reads the pagination hasMoreKey flag from an object payload.
func HasMore(payload any, ds *bf.DataSource) bool {
	if ds == nil || ds.Pagination == nil || ds.Pagination.HasMoreKey == nil {
		return false
	}
	obj, ok := source.Normalize(payload).(map[string]any)
	if !ok {
		return false
	}
	more, _ := obj[*ds.Pagination.HasMoreKey].(bool)
	return more
}

func candidates(payload any) []any {
	switch t := payload.(type) {
	case []any:
		return t
	case map[string]any:
		for _, k := range envelopes {
			if list, ok := t[k].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func labelText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}
