package xlogdump

import "time"

// ControlFile is the subset of pg_control this tool can use as additive
// context when pointed at a data directory: the redo LSN tells a run
// where to start, and the timeline lets it validate a segment's file
// name against the cluster it claims to belong to. Grounded on the
// companion pgdump-control.go file in the same teacher's project.
type ControlFile struct {
	SystemIdentifier uint64
	CheckpointLSN    LogPosition
	RedoLSN          LogPosition
	TimeLineID       uint32
	PrevTimeLineID   uint32
	NextXID          uint32
	NextXIDEpoch     uint32
	NextOID          uint32
	CheckpointTime   time.Time
}

// ParseControlFile decodes a pg_control file's fixed-offset fields for
// the 8.2-9.2 layout. It does not verify the trailing CRC-32C: that
// algorithm is unrelated to the WAL record CRC-32 this package otherwise
// computes, and control-file integrity is not this tool's concern (spec
// §1 Non-goals: not a crash-recovery engine).
func ParseControlFile(data []byte) (ControlFile, error) {
	const minLen = 120
	if len(data) < minLen {
		return ControlFile{}, Wrapf(ErrFormat, "pg_control shorter than expected (%d bytes)", len(data))
	}
	cf := ControlFile{
		SystemIdentifier: u64(data, 0),
		CheckpointLSN:    LogPosition{XLogID: u32(data, 32), XRecOff: u32(data, 36)},
		RedoLSN:          LogPosition{XLogID: u32(data, 40), XRecOff: u32(data, 44)},
		TimeLineID:       u32(data, 48),
		PrevTimeLineID:   u32(data, 52),
		NextXID:          u32(data, 64),
		NextXIDEpoch:     u32(data, 68),
		NextOID:          u32(data, 72),
	}
	if secs := i64(data, 104); secs != 0 {
		cf.CheckpointTime = time.Unix(secs, 0).UTC()
	}
	return cf, nil
}

// SegmentNumber derives the (timeline, segID, segNo) triple a fresh
// Session needs from this control file's redo position, for a run
// started against a live data directory rather than a bare file name.
func (cf ControlFile) SegmentNumber() (timeline, segID, segNo uint32) {
	xrecoff := uint64(cf.RedoLSN.XRecOff)
	return cf.TimeLineID, cf.RedoLSN.XLogID, uint32(xrecoff / SegmentSize)
}
