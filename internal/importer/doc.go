// Package importer scans a source tree for camera media and copies it into a
// date-organized destination tree.
//
// A Session walks the source once, classifies every regular file as raw,
// raster or video, and then transfers rasters, raws and videos in that order.
// Each file is dated from its metadata (or modification time), placed under
// {destination}/{year}/{month}/{day}/{raw|rasters|video}/, and copied only
// when nothing already exists at the target. Dry runs walk the same path but
// never create directories or files. Per-file problems are recorded as
// failed Outcomes; they never stop the remaining files.
package importer
