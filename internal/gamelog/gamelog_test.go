package gamelog

import (
	"testing"

	"github.com/garaekz/chompchamps/internal/share"
)

func TestParseLevelKnownValues(t *testing.T) {
	cases := map[string]share.Level{
		"trace": share.LevelTrace,
		"debug": share.LevelDebug,
		"warn":  share.LevelWarn,
		"error": share.LevelError,
		"":      share.LevelInfo,
		"bogus": share.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestForComponentTagsEntries(t *testing.T) {
	ctx := ForComponent("arbiter", Options{})
	fields := ctx.GetFields()
	if fields["component"] != "arbiter" {
		t.Fatalf("GetFields()[component] = %v, want arbiter", fields["component"])
	}
}
