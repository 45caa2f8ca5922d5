package models

import "testing"

func TestModuleSummarize(t *testing.T) {
	m := Module{ID: 7, Name: "task_manager"}
	s := m.Summarize()
	if s.ShortDesc != "task_manager" {
		t.Errorf("shortdesc fallback = %q, want module name", s.ShortDesc)
	}
	if s.Icon != DefaultModuleIcon {
		t.Errorf("icon fallback = %q", s.Icon)
	}
	if s.Category != "Uncategorized" {
		t.Errorf("category fallback = %q", s.Category)
	}
	if s.URL == "" {
		t.Error("expected a deep-link url")
	}

	full := Module{ID: 8, Name: "crm", ShortDesc: "CRM", Icon: "/x.png", Category: "Sales", Summary: "s"}
	fs := full.Summarize()
	if fs.ShortDesc != "CRM" || fs.Icon != "/x.png" || fs.Category != "Sales" {
		t.Errorf("fallbacks must not override real values: %+v", fs)
	}
}
