package architecture_test

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/mod/modfile"
)

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleRoot(t)

	type violation struct {
		file string
		imp  string
		rule string
	}
	var violations []violation

	walkErr := walkSources(root, func(rel string, imports []string) {
		disallowed := disallowedImports(modulePath, layerFor(rel))
		for _, imp := range imports {
			for _, bad := range disallowed {
				if imp == bad || strings.HasPrefix(imp, bad+"/") {
					violations = append(violations, violation{file: rel, imp: imp, rule: bad})
					break
				}
			}
		}
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}

	if len(violations) > 0 {
		var b strings.Builder
		b.WriteString("import boundary violations:\n")
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s imports %q (disallowed: %q)\n", v.file, v.imp, v.rule)
		}
		t.Fatal(b.String())
	}
}

// Upstream clients are reached through services; only services and app wiring import them.
func TestClientsImportedOnlyByServicesAndApp(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var offenders []string
	err := walkSources(root, func(rel string, imports []string) {
		if strings.HasPrefix(rel, "internal/clients/") ||
			strings.HasPrefix(rel, "internal/services/") ||
			strings.HasPrefix(rel, "internal/app/") {
			return
		}
		for _, imp := range imports {
			if strings.HasPrefix(imp, modulePath+"/internal/clients/") {
				offenders = append(offenders, fmt.Sprintf("- %s imports %q", rel, imp))
			}
		}
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
	if len(offenders) > 0 {
		t.Fatalf("internal/clients imported outside services and app:\n%s", strings.Join(offenders, "\n"))
	}
}

// walkSources visits every non-test Go file under internal/ with its import paths.
func walkSources(root string, visit func(rel string, imports []string)) error {
	fset := token.NewFileSet()
	return filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		imports := make([]string, 0, len(f.Imports))
		for _, spec := range f.Imports {
			if imp, err := strconv.Unquote(spec.Path.Value); err == nil {
				imports = append(imports, imp)
			}
		}
		visit(filepath.ToSlash(rel), imports)
		return nil
	})
}

func layerFor(rel string) string {
	for _, layer := range []string{"pkg", "domain", "normalization", "data", "clients", "services", "http"} {
		if strings.HasPrefix(rel, "internal/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func disallowedImports(modulePath string, layer string) []string {
	var banned []string
	switch layer {
	case "pkg":
		banned = []string{"domain", "normalization", "data", "clients", "observability", "services", "http", "app"}
	case "domain", "normalization":
		banned = []string{"data", "clients", "services", "http", "app"}
	case "data":
		banned = []string{"clients", "services", "http", "app"}
	case "clients":
		banned = []string{"data", "services", "http", "app"}
	case "services":
		banned = []string{"http", "app"}
	case "http":
		banned = []string{"data", "app"}
	}
	out := make([]string, 0, len(banned))
	for _, b := range banned {
		out = append(out, modulePath+"/internal/"+b)
	}
	return out
}

// moduleRoot walks up from the working directory to the directory holding go.mod.
func moduleRoot(t *testing.T) (root, modulePath string) {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			modulePath = modfile.ModulePath(data)
			if modulePath == "" {
				t.Fatalf("module path not found in %s", filepath.Join(dir, "go.mod"))
			}
			return dir, modulePath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found")
		}
		dir = parent
	}
}
