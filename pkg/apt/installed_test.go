package apt

import (
	"slices"
	"testing"
)

func TestParseInstalled(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "two packages",
			output: "pkgA/stable,now 1.0 amd64 [installed]\npkgB/stable,now 2.0 amd64 [installed,automatic]\n",
			want:   []string{"pkgA", "pkgB"},
		},
		{
			name:   "listing header ignored",
			output: "Listing... Done\nbash/stable,now 5.2.15-2+b7 amd64 [installed]\n",
			want:   []string{"bash"},
		},
		{
			name:   "first slash wins",
			output: "foo/bookworm/updates,now 1.0 all [installed]\n",
			want:   []string{"foo"},
		},
		{
			name:   "multiarch duplicates collapse",
			output: "libc6/stable,now 2.36 amd64 [installed]\nzlib1g/stable,now 1.2 amd64 [installed]\nlibc6/stable,now 2.36 i386 [installed]\n",
			want:   []string{"libc6", "zlib1g"},
		},
		{
			name:   "empty",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInstalled(tt.output); !slices.Equal(got, tt.want) {
				t.Errorf("ParseInstalled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInstalledPackages(t *testing.T) {
	output := "Listing... Done\n" +
		"bash/stable,now 5.2.15-2+b7 amd64 [installed]\n" +
		"libc6/stable,now 2.36-9 amd64 [installed]\n" +
		"libc6/stable,now 2.36-9 i386 [installed]\n" +
		"odd/stable\n"

	want := []Package{
		{Name: "bash", Version: "5.2.15-2+b7"},
		{Name: "libc6", Version: "2.36-9"},
		{Name: "odd"},
	}
	if got := ParseInstalledPackages(output); !slices.Equal(got, want) {
		t.Errorf("ParseInstalledPackages() = %v, want %v", got, want)
	}
}
