package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDasherize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"pascal case", "SideMenu", "side-menu", false},
		{"camel case", "sideMenu", "side-menu", false},
		{"already dasherized", "side-menu", "side-menu", false},
		{"snake case", "my_app", "my-app", false},
		{"spaces", "side menu", "side-menu", false},
		{"acronym run", "HTTPServer", "http-server", false},
		{"digits", "menu2go", "menu2go", false},
		{"digit then upper", "v2Widget", "v2-widget", false},
		{"single word", "menu", "menu", false},
		{"empty", "", "", true},
		{"illegal character", "side.menu", "", true},
		{"illegal slash", "side/menu", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dasherize(tt.in)
			if tt.wantErr {
				var invalidErr *InvalidIdentifierError
				require.ErrorAs(t, err, &invalidErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dasherized", "side-menu", "SideMenu", false},
		{"spaces", "side menu", "SideMenu", false},
		{"snake case", "my_service", "MyService", false},
		{"already classified", "SideMenu", "SideMenu", false},
		{"acronym preserved", "HTTPServer", "HTTPServer", false},
		{"single word", "menu", "Menu", false},
		{"empty", "", "", true},
		{"only separators", "--", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.in)
			if tt.wantErr {
				var invalidErr *InvalidIdentifierError
				require.ErrorAs(t, err, &invalidErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Both transforms must be fixpoints of themselves.
func TestTransformIdempotence(t *testing.T) {
	inputs := []string{"SideMenu", "side-menu", "my_app v2", "HTTPServer", "a"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d1, err := Dasherize(in)
			require.NoError(t, err)
			d2, err := Dasherize(d1)
			require.NoError(t, err)
			assert.Equal(t, d1, d2)

			c1, err := Classify(in)
			require.NoError(t, err)
			c2, err := Classify(c1)
			require.NoError(t, err)
			assert.Equal(t, c1, c2)
		})
	}
}
