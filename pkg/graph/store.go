package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/evalgraph/engine/pkg/utils"
)

var ErrNotExist = fmt.Errorf("document not found")

// Store keeps graph documents as yaml files in a directory of a virtual
// filesystem, one file per document. On load, ${NAME} references in the
// file content are substituted from the process environment before
// decoding, so documents may take initial variable values from the
// environment.
type Store struct {
	path string
	fs   vfs.FileSystem
}

func NewStore(path string, fss ...vfs.FileSystem) (*Store, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	err := fs.MkdirAll(path, 0o0700)
	if err != nil && !errors.Is(err, vfs.ErrExist) {
		return nil, err
	}
	return &Store{path: path, fs: fs}, nil
}

func (s *Store) Path(name string) string {
	return vfs.Join(s.fs, s.path, name+".yaml")
}

func (s *Store) List() ([]string, error) {
	list, err := vfs.ReadDir(s.fs, s.path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var result []string
	for _, e := range list {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			result = append(result, e.Name()[:len(e.Name())-5])
		}
	}
	return result, nil
}

func (s *Store) Get(name string) (*Document, error) {
	path := s.Path(name)
	data, err := vfs.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotExist)
		}
		return nil, err
	}
	subst, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("substituting %s: %w", path, err)
	}
	var doc Document
	err = yaml.Unmarshal([]byte(subst), &doc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if doc.Name != name {
		return nil, fmt.Errorf("corrupted store: %s does not contain document %q", path, name)
	}
	return &doc, nil
}

func (s *Store) Set(doc *Document) error {
	err := doc.Validate()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	log.Debug("storing document", "name", doc.Name, "fingerprint", doc.Fingerprint())
	return vfs.WriteFile(s.fs, s.Path(doc.Name), data, 0o600)
}
