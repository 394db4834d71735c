package schema

import (
	"os"
	"path/filepath"
	"strings"

	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/pkg/errors"
)

// Collection is a YANG module collection: the engine's schema forest
// root. It wraps *yang.Modules, the already-parsed schema forest the
// core never mutates.
type Collection struct {
	ms        *yang.Modules
	processed bool
}

// SetYANGPath sets the YANG import path. Each path in paths is a directory
// to search when importing YANG modules either directly or when referenced
// by other modules during import. This must be called prior to
// NewCollection.
func SetYANGPath(paths ...string) { yang.Path = paths }

// NewCollection returns a new, empty YANG module collection.
func NewCollection() *Collection { return &Collection{ms: yang.NewModules()} }

// Raw returns the underlying goyang Modules, for callers that need direct
// access to facilities this package does not wrap.
func (c *Collection) Raw() *yang.Modules { return c.ms }

// Import imports a module by its module name. Process must be called before
// any lookup method after this returns.
func (c *Collection) Import(moduleName string) error {
	if len(yang.Path) == 0 {
		return errors.New("no module paths to search for YANG modules, use SetYANGPath")
	}
	if c.ms.Modules[moduleName] != nil {
		return nil
	}
	if strings.HasSuffix(moduleName, ".yang") || strings.Contains(moduleName, string(os.PathSeparator)) {
		return errors.Errorf("received invalid module name %s", moduleName)
	}
	err := c.ms.Read(moduleName)
	if err == nil {
		c.processed = false
	}
	return err
}

// ReadString parses YANG source held in memory as moduleName, useful for
// tests and embedded schema.
func (c *Collection) ReadString(moduleName string, data string) error {
	if c.ms.Modules[moduleName] != nil {
		return nil
	}
	if strings.HasSuffix(moduleName, ".yang") || strings.Contains(moduleName, string(os.PathSeparator)) {
		return errors.Errorf("received invalid module name %s", moduleName)
	}
	err := c.ms.Parse(data, moduleName)
	if err == nil {
		c.processed = false
	}
	return err
}

// ImportAll reads all YANG files found in the YANG path(s), returning any
// import errors. Process must be called before lookup methods after this
// returns.
func (c *Collection) ImportAll() []error {
	var errs []error
	for _, root := range expandYANGPath(yang.Path) {
		_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				errs = append(errs, importError{path, err.Error()})
				return nil
			}
			if info.Mode().IsRegular() && strings.HasSuffix(path, ".yang") {
				if err := c.ms.Read(path); err != nil {
					errs = append(errs, importError{path, err.Error()})
				} else {
					c.processed = false
				}
			}
			return nil
		})
	}
	return errs
}

// Process processes all modules previously read by Import, ReadString or
// ImportAll, and must be called before any lookup method, to ensure the
// schema Entry tree including all augmentations is built.
func (c *Collection) Process() []error {
	errs := c.ms.Process()
	c.processed = len(errs) == 0
	return errs
}

// ModulesLen returns the number of unique module names in the collection,
// excluding submodule revisions.
func (c *Collection) ModulesLen() (length int) {
	for name := range c.ms.Modules {
		if !strings.Contains(name, "@") {
			length++
		}
	}
	return
}

// FindModuleByName returns the YANG schema node entry for the named
// module.
func (c *Collection) FindModuleByName(name string) (*yang.Entry, error) {
	if !c.processed {
		return nil, errors.New("must call Process first")
	}
	if mod := c.ms.Modules[name]; mod != nil {
		return yang.ToEntry(mod), nil
	}
	return nil, errors.Errorf("unknown module %q", name)
}

// FindModuleByNamespace returns the module entry whose XML namespace URI
// matches ns, per find_module_by_namespace.
func (c *Collection) FindModuleByNamespace(ns string) (*yang.Entry, error) {
	if !c.processed {
		return nil, errors.New("must call Process first")
	}
	var found *yang.Entry
	_ = c.IterLatest(func(mod *yang.Module) error {
		if mod.Namespace != nil && mod.Namespace.Name == ns {
			found = yang.ToEntry(mod)
			return errStop
		}
		return nil
	})
	if found == nil {
		return nil, errors.Errorf("unknown namespace %q", ns)
	}
	return found, nil
}

// FindModuleByPrefix returns the module entry whose canonical prefix
// matches prefix, per find_module_by_prefix.
func (c *Collection) FindModuleByPrefix(prefix string) (*yang.Entry, error) {
	if !c.processed {
		return nil, errors.New("must call Process first")
	}
	var found *yang.Entry
	_ = c.IterLatest(func(mod *yang.Module) error {
		if mod.Prefix != nil && mod.Prefix.Name == prefix {
			found = yang.ToEntry(mod)
			return errStop
		}
		return nil
	})
	if found == nil {
		return nil, errors.Errorf("unknown prefix %q", prefix)
	}
	return found, nil
}

// RootEntry scans the latest version of the module matching name's Space
// field (its namespace) for a top-level data node matching name's Local
// field.
func (c *Collection) RootEntry(name xml.Name) (*yang.Entry, error) {
	if !c.processed {
		return nil, errors.New("must call Process first")
	}
	var entry *yang.Entry
	found := c.IterLatest(func(mod *yang.Module) error {
		if mod.Namespace == nil || mod.Namespace.Name != name.Space {
			return nil
		}
		for local, e := range yang.ToEntry(mod).Dir {
			if name.Local == local {
				entry = e
				return errStop
			}
		}
		return nil
	})
	if found != nil {
		return entry, nil
	}
	return nil, errors.Errorf("unknown top-level element <%s xmlns=%q>", name.Local, name.Space)
}

// IterLatest iterates over the latest version of all YANG modules in the
// underlying module collection.
func (c *Collection) IterLatest(f func(*yang.Module) error) error {
	for name, mod := range c.ms.Modules {
		if !strings.Contains(name, "@") {
			if err := f(mod); err != nil {
				return err
			}
		}
	}
	return nil
}

var errStop = errors.New("stop")

func expandYANGPath(paths []string) []string {
	var result []string
	var roots []string
	for _, path := range paths {
		if "..." == filepath.Base(path) {
			roots = append(roots, filepath.Dir(path))
		} else {
			result = append(result, path)
		}
	}
	for _, root := range roots {
		_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || strings.Contains(path, "/.git/") || strings.Contains(path, "/.hg/") ||
				!info.IsDir() || (len(info.Name()) > 0 && info.Name()[0] == '_') {
				return nil
			}
			result = append(result, path)
			return nil
		})
	}
	return result
}

type importError struct {
	path string
	msg  string
}

func (e importError) Error() string {
	if e.path != "" {
		return e.path + ": " + e.msg
	}
	return e.msg
}
