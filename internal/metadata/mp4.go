package metadata

import (
	"errors"
	"os"
	"time"

	"github.com/abema/go-mp4"
)

// Seconds between the ISO-BMFF epoch (1904-01-01) and the Unix epoch.
const mp4EpochOffset = 2082844800

// MP4Source reads the creation time stored in the movie header (mvhd) of
// ISO-BMFF files.
type MP4Source struct{}

// Open implements Source.
func (MP4Source) Open(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	created, err := movieCreationTime(f)
	if err != nil {
		return ReadFailed(err), nil
	}
	if created.IsZero() {
		return NotPresent(), nil
	}
	return FoundAt(created), nil
}

func movieCreationTime(f *os.File) (created time.Time, err error) {
	defer func() {
		if state := recover(); state != nil {
			err = errors.New("mp4 parser panic")
		}
	}()

	_, err = mp4.ReadBoxStructure(f, func(h *mp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case mp4.BoxTypeMoov():
			return h.Expand()
		case mp4.BoxTypeMvhd():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			if mvhd, ok := box.(*mp4.Mvhd); ok {
				created = mvhdCreationTime(mvhd)
			}
			return nil, nil
		default:
			return nil, nil
		}
	})
	if err != nil {
		return time.Time{}, err
	}
	return created, nil
}

// mvhdCreationTime converts the header timestamp to UTC. A zero field means
// the muxer did not record a creation time.
func mvhdCreationTime(mvhd *mp4.Mvhd) time.Time {
	var secs uint64
	if mvhd.GetVersion() == 1 {
		secs = mvhd.CreationTimeV1
	} else {
		secs = uint64(mvhd.CreationTimeV0)
	}
	if secs <= mp4EpochOffset {
		return time.Time{}
	}
	return time.Unix(int64(secs-mp4EpochOffset), 0).UTC()
}
