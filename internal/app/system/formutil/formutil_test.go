package formutil_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bobprince4u/admin/internal/app/system/formutil"
)

func TestLines(t *testing.T) {
	got := formutil.Lines("  Go \n\nHTMX\r\n  \nMongoDB")
	want := []string{"Go", "HTMX", "MongoDB"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if got := formutil.Lines(""); got == nil || len(got) != 0 {
		t.Errorf("Lines(\"\") = %#v, want empty non-nil", got)
	}
}

func TestCheckbox(t *testing.T) {
	form := url.Values{"featured": {"on"}, "published": {"false"}}
	req := httptest.NewRequest("POST", "/?"+form.Encode(), nil)

	if !formutil.Checkbox(req, "featured") {
		t.Error("ticked checkbox read as false")
	}
	if formutil.Checkbox(req, "published") {
		t.Error("\"false\" read as ticked")
	}
	if formutil.Checkbox(req, "missing") {
		t.Error("absent checkbox read as ticked")
	}
}

func TestInt(t *testing.T) {
	if n, err := formutil.Int(" 4 ", 5); err != nil || n != 4 {
		t.Errorf("Int(4) = %d, %v", n, err)
	}
	if n, err := formutil.Int("", 5); err != nil || n != 5 {
		t.Errorf("Int(\"\") = %d, %v", n, err)
	}
	if _, err := formutil.Int("4.5", 5); err == nil {
		t.Error("expected an error for a fractional value")
	}
}

func TestOptStringAndDeref(t *testing.T) {
	if formutil.OptString("   ") != nil {
		t.Error("blank value should be nil")
	}
	if p := formutil.OptString(" cloud "); p == nil || *p != "cloud" {
		t.Errorf("OptString = %v", p)
	}
	if formutil.Deref(nil) != "" {
		t.Error("Deref(nil) should be empty")
	}
}

func TestPairs(t *testing.T) {
	got := formutil.Pairs([]string{"Uptime", "", "Cost"}, []string{"99.9%", ""})
	if len(got) != 2 {
		t.Fatalf("Pairs() = %v", got)
	}
	if got[0] != [2]string{"Uptime", "99.9%"} || got[1] != [2]string{"Cost", ""} {
		t.Errorf("Pairs() = %v", got)
	}
}
