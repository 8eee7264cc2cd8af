// Package media classifies files discovered during an import into the raw,
// raster and video groups.
//
// Classification is driven by immutable extension sets supplied at
// construction time. Extensions are compared in their normalized form
// (uppercase with a leading dot), so ".cr2", "CR2" and ".Cr2" all resolve to
// the same group. Files whose extension is not in any set stay unclassified
// and are excluded from every import sequence.
//
// Extension-less files can optionally be sniffed by content, which is the
// only place this package reads file data.
package media
