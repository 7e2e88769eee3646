// Package wad provides reading and writing of Doom WAD archives.
package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	headerSize = 12
	entrySize  = 16
	nameSize   = 8
)

// WAD errors.
var (
	ErrInvalidMagic = errors.New("invalid WAD magic: expected 'IWAD' or 'PWAD'")
	ErrTruncatedWAD = errors.New("truncated WAD data")
	ErrLumpNotFound = errors.New("lump not found")
)

// Kind is the WAD type stored in the header magic.
type Kind string

// WAD kinds.
const (
	IWAD Kind = "IWAD"
	PWAD Kind = "PWAD"
)

// Archive represents an opened WAD archive.
type Archive struct {
	file    *os.File
	size    int64
	header  Header
	entries []Entry
}

// Header contains WAD file header information.
type Header struct {
	Magic       [4]byte
	LumpCount   int32
	TableOffset int32
}

// Entry represents a lump in the directory.
type Entry struct {
	Name   string
	Offset int32
	Size   int32
}

// Open opens a WAD archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	archive := &Archive{file: file, size: info.Size()}

	if err := archive.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readDirectory(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Kind returns whether the archive is an IWAD or PWAD.
func (a *Archive) Kind() Kind {
	return Kind(a.header.Magic[:])
}

func (a *Archive) readHeader() error {
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := binary.Read(a.file, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncatedWAD, err)
	}

	if k := a.Kind(); k != IWAD && k != PWAD {
		return ErrInvalidMagic
	}

	if a.header.LumpCount < 0 || a.header.TableOffset < headerSize {
		return fmt.Errorf("invalid directory: %d lumps at offset %d", a.header.LumpCount, a.header.TableOffset)
	}

	if end := int64(a.header.TableOffset) + int64(a.header.LumpCount)*entrySize; end > a.size {
		return fmt.Errorf("%w: directory ends at %d, file is %d bytes", ErrTruncatedWAD, end, a.size)
	}

	return nil
}

func (a *Archive) readDirectory() error {
	if _, err := a.file.Seek(int64(a.header.TableOffset), io.SeekStart); err != nil {
		return err
	}

	table := make([]byte, int(a.header.LumpCount)*entrySize)
	if _, err := io.ReadFull(a.file, table); err != nil {
		return fmt.Errorf("%w: directory", ErrTruncatedWAD)
	}

	a.entries = make([]Entry, 0, a.header.LumpCount)
	for off := 0; off < len(table); off += entrySize {
		rawName := table[off+8 : off+entrySize]
		if end := bytes.IndexByte(rawName, 0); end >= 0 {
			rawName = rawName[:end]
		}

		e := Entry{
			Name:   normalizeName(string(rawName)),
			Offset: int32(binary.LittleEndian.Uint32(table[off:])),
			Size:   int32(binary.LittleEndian.Uint32(table[off+4:])),
		}
		if e.Offset < 0 || e.Size < 0 {
			return fmt.Errorf("invalid entry %s: offset %d, size %d", e.Name, e.Offset, e.Size)
		}
		if end := int64(e.Offset) + int64(e.Size); end > a.size {
			return fmt.Errorf("%w: lump %s ends at %d, file is %d bytes", ErrTruncatedWAD, e.Name, end, a.size)
		}
		a.entries = append(a.entries, e)
	}

	return nil
}

// Entries returns the directory in file order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// List returns all lump names in directory order. Names may repeat.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		result = append(result, e.Name)
	}
	return result
}

// find returns the last entry with the given name, which is the one the
// engine would load.
func (a *Archive) find(name string) (Entry, bool) {
	name = normalizeName(name)
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].Name == name {
			return a.entries[i], true
		}
	}
	return Entry{}, false
}

// Contains checks if a lump exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.find(name)
	return ok
}

// Read reads a lump from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	entry, ok := a.find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLumpNotFound, name)
	}

	if _, err := a.file.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return nil, err
	}

	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(a.file, data); err != nil {
		return nil, fmt.Errorf("%w: lump %s", ErrTruncatedWAD, entry.Name)
	}
	return data, nil
}

func normalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) > nameSize {
		name = name[:nameSize]
	}
	return name
}
