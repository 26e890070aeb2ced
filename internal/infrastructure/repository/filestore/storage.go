// Package filestore persists seasons and the player database as data files
// through c2FmZQ/storage, encrypted when a master key passphrase is set.
package filestore

import (
	"os"
	"path/filepath"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"
	"github.com/cockroachdb/errors"
)

const masterKeyFile = "master.key"

// Open prepares dataDir and returns a storage handle. With an empty
// passphrase files are written unencrypted, which is refused when a master
// key already exists in dataDir.
func Open(dataDir, passphrase string) (*storage.Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dataDir)
	}

	keyFile := filepath.Join(dataDir, masterKeyFile)
	if passphrase == "" {
		if _, err := os.Stat(keyFile); err == nil {
			return nil, errors.Newf("%s exists but no master key passphrase is configured", keyFile)
		}
		return storage.New(dataDir, nil), nil
	}

	masterKey, err := crypto.ReadMasterKey([]byte(passphrase), keyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read master key")
		}
		masterKey, err = crypto.CreateMasterKey()
		if err != nil {
			return nil, errors.Wrap(err, "create master key")
		}
		if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
			return nil, errors.Wrap(err, "save master key")
		}
	}
	return storage.New(dataDir, masterKey), nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat %s", path)
}
