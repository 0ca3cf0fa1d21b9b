// Package dataset loads the geography, phone, postcode and village tables
// once per bundle, from embedded copies or from a directory override.
package dataset

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/louisbranch/zhpersona/internal/services/persona/geo"
	"github.com/louisbranch/zhpersona/internal/services/persona/phone"
	"github.com/louisbranch/zhpersona/internal/services/persona/postcode"
	"github.com/louisbranch/zhpersona/internal/services/persona/village"
)

// Dataset file names, both embedded and in an override directory.
const (
	AreasFile     = "areas.json"
	PhonesFile    = "phones.json"
	PostcodesFile = "postcodes.json"
	VillagesFile  = "villages.json.gz"
)

//go:embed data/areas.json data/phones.json data/postcodes.json data/villages.json.gz
var embedded embed.FS

// Options configure a Bundle.
type Options struct {
	// Dir overrides the embedded tables. Empty uses the embedded copies.
	Dir string
	// OnDegraded is called when an optional table fails to load.
	OnDegraded func(name string, err error)
}

// Status reports which tables loaded.
type Status struct {
	Geography bool `json:"geography"`
	Phones    bool `json:"phones"`
	Postcodes bool `json:"postcodes"`
	Villages  bool `json:"villages"`
}

// Bundle holds the read-only tables. Each table is decoded on first use
// under its own once guard; afterwards access needs no locking.
type Bundle struct {
	opts Options

	geoOnce sync.Once
	geo     *geo.Index
	geoErr  error

	phonesOnce sync.Once
	phones     *phone.Directory
	phonesOK   bool

	postcodesOnce sync.Once
	postcodes     *postcode.Index
	postcodesOK   bool

	villagesOnce sync.Once
	villages     *village.Corpus
	villagesOK   bool
}

// New creates a bundle. Nothing is read until a table is requested.
func New(opts Options) *Bundle {
	opts.Dir = strings.TrimSpace(opts.Dir)
	return &Bundle{opts: opts}
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the process-wide bundle over the embedded tables.
func Default() *Bundle {
	defaultOnce.Do(func() {
		defaultBundle = New(Options{})
	})
	return defaultBundle
}

// Geography returns the province tree. Missing or malformed geography is
// an error because no persona can be built without it.
func (b *Bundle) Geography() (*geo.Index, error) {
	b.geoOnce.Do(func() {
		raw, err := b.read(AreasFile)
		if err != nil {
			b.geoErr = err
			return
		}
		b.geo, b.geoErr = geo.Decode(raw)
	})
	return b.geo, b.geoErr
}

// Phones returns the phone directory. A table that fails to load is logged
// and replaced by an empty directory, so every lookup falls back.
func (b *Bundle) Phones() *phone.Directory {
	b.phonesOnce.Do(func() {
		raw, err := b.read(PhonesFile)
		if err == nil {
			b.phones, err = phone.Decode(raw)
		}
		if err != nil {
			b.degraded(PhonesFile, err)
			b.phones = phone.New(nil)
			return
		}
		b.phonesOK = true
	})
	return b.phones
}

// Postcodes returns the postcode index, or an empty index when the table
// fails to load.
func (b *Bundle) Postcodes() *postcode.Index {
	b.postcodesOnce.Do(func() {
		raw, err := b.read(PostcodesFile)
		if err == nil {
			b.postcodes, err = postcode.Decode(raw)
		}
		if err != nil {
			b.degraded(PostcodesFile, err)
			b.postcodes = postcode.New(nil)
			return
		}
		b.postcodesOK = true
	})
	return b.postcodes
}

// Villages returns the village corpus, or an empty corpus when the table
// fails to load.
func (b *Bundle) Villages() *village.Corpus {
	b.villagesOnce.Do(func() {
		raw, err := b.read(VillagesFile)
		if err == nil {
			b.villages, err = village.DecodeGzip(raw)
		}
		if err != nil {
			b.degraded(VillagesFile, err)
			b.villages = village.New(nil)
			return
		}
		b.villagesOK = true
	})
	return b.villages
}

// Preload loads every table and returns the geography error, if any.
func (b *Bundle) Preload() error {
	b.Phones()
	b.Postcodes()
	b.Villages()
	_, err := b.Geography()
	return err
}

// Status loads every table and reports which ones are usable.
func (b *Bundle) Status() Status {
	geoErr := b.Preload()
	return Status{
		Geography: geoErr == nil,
		Phones:    b.phonesOK,
		Postcodes: b.postcodesOK,
		Villages:  b.villagesOK,
	}
}

func (b *Bundle) read(name string) ([]byte, error) {
	if b.opts.Dir != "" {
		raw, err := os.ReadFile(filepath.Join(b.opts.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return raw, nil
	}
	raw, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return raw, nil
}

func (b *Bundle) degraded(name string, err error) {
	log.Printf("dataset %s unavailable, using fallbacks: %v", name, err)
	if b.opts.OnDegraded != nil {
		b.opts.OnDegraded(name, err)
	}
}
