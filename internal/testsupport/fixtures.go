package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const exifTimestampLayout = "2006:01:02 15:04:05"

// TIFFWithDate returns a minimal little-endian TIFF whose EXIF sub-IFD carries
// DateTimeOriginal = when (wall clock, no zone).
func TIFFWithDate(when time.Time) []byte {
	stamp := append([]byte(when.Format(exifTimestampLayout)), 0x00)

	var buf bytes.Buffer
	le := binary.LittleEndian
	write := func(v any) { _ = binary.Write(&buf, le, v) }

	// Header: byte order, magic, offset of IFD0.
	buf.WriteString("II")
	write(uint16(42))
	write(uint32(8))

	// IFD0 at 8: one entry pointing at the EXIF IFD.
	const exifIFDOffset = 8 + 2 + 12 + 4
	write(uint16(1))
	write(uint16(0x8769)) // ExifIFDPointer
	write(uint16(4))      // LONG
	write(uint32(1))
	write(uint32(exifIFDOffset))
	write(uint32(0))

	// EXIF IFD: DateTimeOriginal stored out of line.
	const stampOffset = exifIFDOffset + 2 + 12 + 4
	write(uint16(1))
	write(uint16(0x9003)) // DateTimeOriginal
	write(uint16(2))      // ASCII
	write(uint32(len(stamp)))
	write(uint32(stampOffset))
	write(uint32(0))

	buf.Write(stamp)
	return buf.Bytes()
}

// JPEGWithDate wraps TIFFWithDate in a JPEG APP1 segment.
func JPEGWithDate(when time.Time) []byte {
	tiff := TIFFWithDate(when)
	payload := append([]byte("Exif\x00\x00"), tiff...)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// JPEGWithoutExif returns a JFIF-only JPEG with no metadata.
func JPEGWithoutExif() []byte {
	return []byte{
		0xFF, 0xD8,
		0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
		0xFF, 0xD9,
	}
}

// MP4WithCreation returns an ftyp + moov/mvhd (version 0) file whose movie
// header records created.
func MP4WithCreation(created time.Time) []byte {
	var buf bytes.Buffer
	be := binary.BigEndian
	write := func(v any) { _ = binary.Write(&buf, be, v) }

	write(uint32(20))
	buf.WriteString("ftyp")
	buf.WriteString("isom")
	write(uint32(0x200))
	buf.WriteString("isom")

	const mvhdSize = 8 + 100
	write(uint32(8 + mvhdSize))
	buf.WriteString("moov")
	write(uint32(mvhdSize))
	buf.WriteString("mvhd")
	write(uint32(0)) // version 0, no flags
	stamp := uint32(0)
	if !created.IsZero() {
		stamp = uint32(created.Unix() + 2082844800)
	}
	// creation, modification, timescale, duration
	write(stamp)
	write(stamp)
	write(uint32(1000))
	write(uint32(0))
	// rate, volume, reserved fields
	write(int32(0x00010000))
	write(int16(0x0100))
	write(int16(0))
	write([2]uint32{})
	// unity matrix, pre_defined, next_track_ID
	write([9]int32{0x00010000, 0, 0, 0, 0x00010000, 0, 0, 0, 0x40000000})
	write([6]int32{})
	write(uint32(1))
	return buf.Bytes()
}

// WriteFile writes size filler bytes to path, at least one.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	WriteBytes(t, path, bytes.Repeat([]byte{0x42}, int(max(size, 1))))
}

// WriteBytes writes data to path, creating parent directories.
func WriteBytes(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SetModTime sets both access and modification time of path.
func SetModTime(t testing.TB, path string, when time.Time) {
	t.Helper()

	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
