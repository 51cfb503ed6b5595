package storage

import (
	"io"
	"os"
	"path/filepath"
	"regexp"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// storageNamePattern matches the only filenames this store will touch. The
// name is generated server-side, so anything else is a programming error or
// tampering.
var storageNamePattern = regexp.MustCompile(`^[0-9a-f]{32}(\.(pdf|jpg|jpeg|png))?$`)

var ErrInvalidStorageName = errs.New("invalid storage name")

// LocalStore keeps uploads on the local filesystem under
// {root}/{submissionID}/{docType}/{storageName}.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, errs.Wrap(err, "failed to create storage root")
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(submissionID uuid.UUID, docType document.Type, storageName string) (string, error) {
	if !storageNamePattern.MatchString(storageName) {
		return "", ErrInvalidStorageName
	}
	return filepath.Join(s.root, submissionID.String(), docType.String(), storageName), nil
}

// Save writes the document content. A partially written file is removed
// before the error is returned, so the store never leaks half-written blobs.
func (s *LocalStore) Save(submissionID uuid.UUID, docType document.Type, storageName string, r io.Reader) error {
	path, err := s.path(submissionID, docType, storageName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errs.Wrap(err, "failed to create document directory")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return errs.Wrap(err, "failed to create document file")
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return errs.Wrap(err, "failed to write document file")
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errs.Wrap(err, "failed to close document file")
	}
	return nil
}

// Open returns the stored content for streaming. The caller closes it.
func (s *LocalStore) Open(submissionID uuid.UUID, docType document.Type, storageName string) (io.ReadSeekCloser, error) {
	path, err := s.path(submissionID, docType, storageName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open document file")
	}
	return f, nil
}

// Remove deletes one stored file. Missing files are not an error; cleanup
// paths may race with each other.
func (s *LocalStore) Remove(submissionID uuid.UUID, docType document.Type, storageName string) error {
	path, err := s.path(submissionID, docType, storageName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(err, "failed to remove document file")
	}
	return nil
}

// RemoveSubmission deletes every file stored for the submission.
func (s *LocalStore) RemoveSubmission(submissionID uuid.UUID) error {
	if err := os.RemoveAll(filepath.Join(s.root, submissionID.String())); err != nil {
		return errs.Wrap(err, "failed to remove submission files")
	}
	return nil
}
