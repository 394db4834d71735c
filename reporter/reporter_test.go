package reporter

import "testing"

func TestMissingMandatoryReportShape(t *testing.T) {
	r := MissingMandatoryReport("target")
	if r.Type != ErrorTypeApplication || r.Tag != "missing-element" {
		t.Fatalf("got %s/%s, want application/missing-element", r.Type, r.Tag)
	}
	if r.Info.BadElement != "target" {
		t.Fatalf("got bad-element %q, want target", r.Info.BadElement)
	}
	if r.Message != "Mandatory variable" {
		t.Fatalf("got message %q, want %q", r.Message, "Mandatory variable")
	}
}

func TestUnknownElementReportShape(t *testing.T) {
	r := UnknownElementReport("bogus")
	if r.Type != ErrorTypeApplication || r.Tag != "unknown-element" {
		t.Fatalf("got %s/%s, want application/unknown-element", r.Type, r.Tag)
	}
	if r.Info.BadElement != "bogus" {
		t.Fatalf("got bad-element %q, want bogus", r.Info.BadElement)
	}
}

func TestMissingChoiceReportShape(t *testing.T) {
	r := MissingChoiceReport("config-or-target")
	if r.Type != ErrorTypeApplication || r.Tag != "data-missing" || r.AppTag != "missing-choice" {
		t.Fatalf("got %s/%s/%s, want application/data-missing/missing-choice", r.Type, r.Tag, r.AppTag)
	}
	if r.Info.MissingChoice != "config-or-target" {
		t.Fatalf("got missing-choice %q, want config-or-target", r.Info.MissingChoice)
	}
}

func TestUnknownNamespaceReportShape(t *testing.T) {
	r := UnknownNamespaceReport("urn:example:bogus")
	if r.Type != ErrorTypeApplication || r.Tag != "unknown-namespace" {
		t.Fatalf("got %s/%s, want application/unknown-namespace", r.Type, r.Tag)
	}
	if r.Info.Namespace != "urn:example:bogus" {
		t.Fatalf("got namespace %q, want urn:example:bogus", r.Info.Namespace)
	}
}

func TestAllReportsCarrySeverityError(t *testing.T) {
	reports := []Report{
		MissingMandatoryReport("x"),
		UnknownElementReport("x"),
		MissingChoiceReport("x"),
		UnknownNamespaceReport("x"),
		SchemaMismatchReport("x"),
		UnknownModuleReport("x"),
		TypeParseErrorReport("x", "bad value"),
		InvalidIdentityRefReport("x"),
		MalformedEncodingReport("bad"),
		DuplicateKeyReport("x"),
	}
	for _, r := range reports {
		if r.Severity != "error" {
			t.Fatalf("kind %s: got severity %q, want error", r.Kind, r.Severity)
		}
		if r.Error() == "" {
			t.Fatalf("kind %s: Error() returned empty string", r.Kind)
		}
	}
}

func TestAmbiguousMatchReportIsWarningSeverity(t *testing.T) {
	r := AmbiguousMatchReport("port", []string{"mod-a", "mod-b"})
	if r.Severity != "warning" {
		t.Fatalf("got severity %q, want warning", r.Severity)
	}
	if r.Kind != SchemaMismatch || r.AppTag != "ambiguous-match" {
		t.Fatalf("got kind %s app-tag %s, want SchemaMismatch/ambiguous-match", r.Kind, r.AppTag)
	}
	if r.Info.BadElement != "port" {
		t.Fatalf("got bad-element %q, want port", r.Info.BadElement)
	}
}

func TestCollectorAccumulatesAndResets(t *testing.T) {
	c := NewCollector()
	if c.HasErrors() {
		t.Fatal("fresh collector should have no errors")
	}
	c.Report(MissingMandatoryReport("target"))
	c.Report(UnknownElementReport("bogus"))
	if !c.HasErrors() {
		t.Fatal("expected HasErrors after two reports")
	}
	got := c.Reports()
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}
	if got[0].Kind != MissingMandatory || got[1].Kind != UnknownElement {
		t.Fatalf("unexpected report kinds: %v, %v", got[0].Kind, got[1].Kind)
	}
	c.Reset()
	if c.HasErrors() {
		t.Fatal("expected no errors after Reset")
	}
}

func TestCollectorReportsSnapshotIsIndependent(t *testing.T) {
	c := NewCollector()
	c.Report(MissingMandatoryReport("a"))
	snap := c.Reports()
	c.Report(UnknownElementReport("b"))
	if len(snap) != 1 {
		t.Fatalf("mutating collector after snapshot affected snapshot: got %d entries", len(snap))
	}
}
