package apt

import (
	"bufio"
	"strings"
)

// Package is one installed package as listed by "apt list --installed".
type Package struct {
	Name    string
	Version string
}

// ParseInstalledPackages extracts packages from "apt list --installed"
// output. Each relevant line looks like
//
//	bash/stable,now 5.2.15-2+b7 amd64 [installed]
//
// The name is the text before the first "/" and the version is the first
// field after it. Lines without a "/" (such as the "Listing..." header) are
// ignored. A name listed more than once, as happens for multi-arch
// packages, is returned once, at its first position.
func ParseInstalledPackages(output string) []Package {
	var (
		pkgs []Package
		seen = make(map[string]bool)
	)

	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		name, rest, ok := strings.Cut(sc.Text(), "/")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		p := Package{Name: name}
		if f := strings.Fields(rest); len(f) > 1 {
			p.Version = f[1]
		}
		pkgs = append(pkgs, p)
	}
	return pkgs
}

// ParseInstalled is [ParseInstalledPackages] reduced to package names.
func ParseInstalled(output string) []string {
	var names []string
	for _, p := range ParseInstalledPackages(output) {
		names = append(names, p.Name)
	}
	return names
}
