package schema

import (
	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
)

// crossCheck runs the referential checks over a structurally valid config.
// Each check walks every field before the next one starts.
func crossCheck(cfg *bf.FormConfig) bf.Issues {
	var iss bf.Issues
	fields := bf.Root().Key("fields")

	names := make(map[string]struct{}, len(cfg.Fields))
	for i, f := range cfg.Fields {
		if _, dup := names[f.Name]; dup {
			iss = append(iss, fields.Index(i).Key("name").Issue(bf.KindDuplicateName, bf.CodeCustom,
				i18n.T(i18n.DuplicateField, map[string]string{"name": f.Name}), "name", f.Name))
			continue
		}
		names[f.Name] = struct{}{}
	}

	for i, f := range cfg.Fields {
		if f.Validation == nil || f.Validation.SameAs == nil || *f.Validation.SameAs == "" {
			continue
		}
		target := *f.Validation.SameAs
		if _, ok := names[target]; !ok {
			iss = append(iss, fields.Index(i).Key("validation").Key("sameAs").Issue(bf.KindDanglingReference, bf.CodeCustom,
				i18n.T(i18n.SameAsMissing, map[string]string{"target": target}), "target", target))
		}
	}

	for i, f := range cfg.Fields {
		if f.Type.SelectLike() && len(f.Options) == 0 && f.DataSource == nil {
			iss = append(iss, fields.Index(i).Key("options").Issue(bf.KindStructuralViolation, bf.CodeCustom,
				i18n.T(i18n.SelectNeedsOptions, nil)))
		}
	}

	for i, f := range cfg.Fields {
		if f.Type == bf.FieldMultiselect && f.MaxSelections != nil && *f.MaxSelections == 1 {
			iss = append(iss, fields.Index(i).Key("maxSelections").Issue(bf.KindStructuralViolation, bf.CodeCustom,
				i18n.T(i18n.MultiselectSingle, nil)))
		}
	}

	for i, f := range cfg.Fields {
		if f.IsPassword == nil {
			continue
		}
		at := fields.Index(i).Key("isPassword")
		switch {
		case f.Type != bf.FieldPassword && *f.IsPassword:
			iss = append(iss, at.Issue(bf.KindStructuralViolation, bf.CodeCustom, i18n.T(i18n.PasswordOnly, nil)))
		case f.Type == bf.FieldPassword && !*f.IsPassword:
			iss = append(iss, at.Issue(bf.KindStructuralViolation, bf.CodeCustom, i18n.T(i18n.PasswordNotFalse, nil)))
		}
	}

	if len(cfg.Steps) > 0 {
		iss = append(iss, checkSteps(cfg.Steps, names)...)
	}
	return iss
}

// checkSteps enforces step id uniqueness and one step per field. A field is
// "claimed" once a previous step has listed it.
func checkSteps(steps []bf.FormStep, names map[string]struct{}) bf.Issues {
	var iss bf.Issues
	root := bf.Root().Key("steps")
	ids := make(map[string]struct{}, len(steps))
	claimed := make(map[string]struct{})

	for si, s := range steps {
		sp := root.Index(si)
		if _, dup := ids[s.ID]; dup {
			iss = append(iss, sp.Key("id").Issue(bf.KindDuplicateName, bf.CodeCustom,
				i18n.T(i18n.DuplicateStep, map[string]string{"id": s.ID}), "id", s.ID))
		}
		ids[s.ID] = struct{}{}

		local := make(map[string]struct{}, len(s.Fields))
		for fi, name := range s.Fields {
			at := sp.Key("fields").Index(fi)
			if _, ok := names[name]; !ok {
				iss = append(iss, at.Issue(bf.KindDanglingReference, bf.CodeCustom,
					i18n.T(i18n.StepUnknownField, map[string]string{"field": name}), "field", name))
				continue
			}
			if _, seen := local[name]; seen {
				iss = append(iss, at.Issue(bf.KindMembershipViolation, bf.CodeCustom,
					i18n.T(i18n.StepFieldRepeated, map[string]string{"field": name, "step": s.ID}), "field", name, "step", s.ID))
				continue
			}
			local[name] = struct{}{}
			if _, taken := claimed[name]; taken {
				iss = append(iss, at.Issue(bf.KindMembershipViolation, bf.CodeCustom,
					i18n.T(i18n.StepFieldClaimed, map[string]string{"field": name}), "field", name))
			}
		}
		for name := range local {
			claimed[name] = struct{}{}
		}
	}

	if len(claimed) == 0 {
		iss = append(iss, root.Issue(bf.KindEmptyStepSet, bf.CodeCustom, i18n.T(i18n.StepsEmpty, nil)))
	}
	return iss
}
