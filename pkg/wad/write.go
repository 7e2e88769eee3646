package wad

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Lump is a named blob to be written into a WAD.
type Lump struct {
	Name string
	Data []byte
}

// Write encodes lumps as a WAD of the given kind. Lump data follows the
// header and the directory is written last.
func Write(w io.Writer, kind Kind, lumps []Lump) error {
	if kind != IWAD && kind != PWAD {
		return ErrInvalidMagic
	}

	offset := headerSize
	entries := make([]Entry, len(lumps))
	for i, l := range lumps {
		if l.Name == "" {
			return fmt.Errorf("lump %d has no name", i)
		}
		entries[i] = Entry{Name: normalizeName(l.Name), Offset: int32(offset), Size: int32(len(l.Data))}
		offset += len(l.Data)
	}

	bw := bufio.NewWriter(w)

	var header Header
	copy(header.Magic[:], kind)
	header.LumpCount = int32(len(lumps))
	header.TableOffset = int32(offset)
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, l := range lumps {
		if _, err := bw.Write(l.Data); err != nil {
			return fmt.Errorf("writing lump %s: %w", l.Name, err)
		}
	}

	entry := make([]byte, entrySize)
	for _, e := range entries {
		clear(entry)
		binary.LittleEndian.PutUint32(entry[0:], uint32(e.Offset))
		binary.LittleEndian.PutUint32(entry[4:], uint32(e.Size))
		copy(entry[8:], e.Name)
		if _, err := bw.Write(entry); err != nil {
			return fmt.Errorf("writing directory: %w", err)
		}
	}

	return bw.Flush()
}

// WriteFile writes lumps as a WAD to path, creating parent directories.
func WriteFile(path string, kind Kind, lumps []Lump) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, kind, lumps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
