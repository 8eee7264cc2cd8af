// Package metadata resolves the capture date of a media file.
//
// A Resolver asks a class-specific Source to open the file and report a
// structured date/time. When the metadata carries no date, or the container
// cannot be parsed, the file's modification time is used instead. That
// fallback is policy, not failure. Only a file that cannot be opened at all
// produces an error (OpenError), because there is no timestamp to fall back
// to.
//
// Sources:
//   - ExifSource decodes TIFF/JPEG EXIF with rwcarlsen/goexif and, when that
//     decoder rejects the container, scans the raw bytes for an EXIF block
//     with dsoprea/go-exif (RAF, HEIC, ORF and similar).
//   - MP4Source reads the movie header creation time of ISO-BMFF files
//     (MP4, MOV, M4V, 3GP) with abema/go-mp4.
package metadata
