package compiler

import (
	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/source"
)

var inferred = map[bf.FieldType]bf.DataType{
	bf.FieldText:        bf.DataString,
	bf.FieldEmail:       bf.DataString,
	bf.FieldPassword:    bf.DataString,
	bf.FieldTextarea:    bf.DataString,
	bf.FieldFile:        bf.DataString,
	bf.FieldNumber:      bf.DataNumber,
	bf.FieldCheckbox:    bf.DataBoolean,
	bf.FieldToggle:      bf.DataBoolean,
	bf.FieldDate:        bf.DataDate,
	bf.FieldDatetime:    bf.DataDatetime,
	bf.FieldMultiselect: bf.DataArray,
}

// EffectiveDataType returns the declared dataType of f, or the type inferred
// from its UI type. select and radio follow their first option's value;
// unknown types fall back to json.
func EffectiveDataType(f *bf.FormField) bf.DataType {
	if f.DataType != nil {
		return *f.DataType
	}
	if f.Type == bf.FieldSelect || f.Type == bf.FieldRadio {
		return optionDataType(f)
	}
	if dt, ok := inferred[f.Type]; ok {
		return dt
	}
	return bf.DataJSON
}

func optionDataType(f *bf.FormField) bf.DataType {
	if len(f.Options) == 0 {
		return bf.DataString
	}
	switch v := f.Options[0].Value; v.(type) {
	case bool:
		return bf.DataBoolean
	default:
		if _, ok := source.ToFloat(v); ok {
			return bf.DataNumber
		}
	}
	return bf.DataString
}
