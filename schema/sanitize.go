package schema

import (
	"github.com/microcosm-cc/bluemonday"

	bf "github.com/mikiasgoitom/better-form"
)

var strict = bluemonday.StrictPolicy()

func clean(s *string) {
	if s != nil {
		*s = strict.Sanitize(*s)
	}
}

// sanitize strips markup from every string a renderer shows as text. Names,
// endpoints and option values are left alone.
func sanitize(cfg *bf.FormConfig) {
	clean(cfg.Title)
	clean(cfg.Description)
	clean(cfg.OnSuccessMessage)
	clean(cfg.OnErrorMessage)

	for i := range cfg.Fields {
		f := &cfg.Fields[i]
		clean(f.Label)
		clean(f.Placeholder)
		clean(f.Description)
		clean(f.HelpText)
		for j := range f.Options {
			f.Options[j].Label = strict.Sanitize(f.Options[j].Label)
			clean(f.Options[j].Description)
		}
	}
	for i := range cfg.Steps {
		s := &cfg.Steps[i]
		clean(s.Title)
		clean(s.Description)
		clean(s.NextLabel)
		clean(s.PreviousLabel)
		clean(s.ProgressLabel)
	}

	sub := &cfg.Submit
	sub.Label = strict.Sanitize(sub.Label)
	clean(sub.LoadingText)
	clean(sub.SuccessMessage)
	clean(sub.ErrorMessage)
	if cd := sub.ConfirmDialog; cd != nil {
		cd.Title = strict.Sanitize(cd.Title)
		cd.Message = strict.Sanitize(cd.Message)
		clean(cd.ConfirmLabel)
		clean(cd.CancelLabel)
	}
}
