package xlogdump

import (
	"io"

	"github.com/pkg/errors"
)

// RecordHeader is the fixed, fixed-size prefix of every WAL record
// (spec §3.3), 32 bytes including its own CRC.
type RecordHeader struct {
	TotalLen uint32
	Xid      uint32
	Len      uint32 // length of the rmgr-specific payload
	Info     uint8
	RmID     uint8
	Prev     LogPosition
	CRC      uint32
}

func parseRecordHeader(data []byte) (RecordHeader, error) {
	if len(data) < RecordHeaderSize {
		return RecordHeader{}, errors.Wrap(ErrFormat, "record header truncated")
	}
	return RecordHeader{
		TotalLen: u32(data, 0),
		Xid:      u32(data, 4),
		Len:      u32(data, 8),
		Info:     data[12],
		RmID:     data[13],
		Prev: LogPosition{
			XLogID:  u32(data, 16),
			XRecOff: u32(data, 20),
		},
		CRC: u32(data, 24),
	}, nil
}

// OpCode returns the resource-manager op-code: the top four bits of Info.
func (h RecordHeader) OpCode() uint8 { return h.Info & XLROpCodeMask }

// HasBackupBlock reports whether backup-block slot i (0..3) is present.
func (h RecordHeader) HasBackupBlock(i int) bool {
	return h.Info&XLRBkpBlockMask&XLRSetBkpBlock(i) != 0
}

// IsXLogSwitch reports whether this is the distinguished zero-payload
// log-switch marker record.
func (h RecordHeader) IsXLogSwitch() bool {
	return h.RmID == RMXLOGID && h.Info == XLOGSwitch
}

// Record is a fully reassembled, CRC-validated WAL record: its header plus
// a contiguous view (owned by the Session's scratch buffer, valid only
// until the next ReadRecord call) of payload and any backup blocks.
type Record struct {
	Header RecordHeader
	Pos    LogPosition // curRecPtr: this record's own logical position

	// Raw is the full on-disk record: header, payload, backup blocks,
	// exactly Header.TotalLen bytes.
	Raw []byte
}

// Payload returns the rmgr-specific payload bytes (Header.Len bytes).
func (r *Record) Payload() []byte {
	return r.Raw[RecordHeaderSize : RecordHeaderSize+int(r.Header.Len)]
}

// backupBlocksStart is the offset within Raw where backup-block entries
// begin.
func (r *Record) backupBlocksStart() int {
	return RecordHeaderSize + int(r.Header.Len)
}

// ReadResult is the outcome of one ReadRecord call (spec §4.1).
type ReadResult int

const (
	// ReadOK: a record was materialized in the session's scratch buffer.
	ReadOK ReadResult = iota
	// ReadSwitch: the log-switch marker record was encountered.
	ReadSwitch
	// ReadEOF: no more pages/records (clean end of input).
	ReadEOF
	// ReadFail: a format, I/O or allocation error; the caller should stop
	// processing this file.
	ReadFail
)

// PageSource supplies whole physical pages to a Session, one at a time,
// in file order. A segment file on disk is adapted to it by
// FilePageSource (render.go).
type PageSource interface {
	// ReadPage reads exactly PageSize bytes into buf, or returns an error
	// (io.EOF on clean end of input, io.ErrUnexpectedEOF on a short read).
	ReadPage(buf []byte) error
}

// Session is the reentrant WAL reader state spec §9's Open Question names
// as canonical: everything the original tool kept in process-wide static
// variables, collected into one value passed by reference. One Session
// reads one segment file.
type Session struct {
	src PageSource

	TimelineID uint32
	SegID      uint32 // "logId": high 32 bits of the segment's starting xrecoff
	SegNo      uint32 // segment number within the timeline

	pageBuf   [PageSize]byte
	pageOff   int64 // byte offset of the current page within the segment, or -PageSize before first read
	recOff    int   // intra-page offset of the next record
	curHeader PageHeader

	curRecPtr  LogPosition
	prevRecPtr LogPosition

	scratch []byte

	// The Session applies no rmid/xid filter: ReadRecord surfaces every
	// record, and render.go's Driver skips the ones outside --rmid/--xid
	// after counting them against statistics.
}

// NewSession creates a reader for one segment, with segment identity
// (timeline, high id, segment number) as parsed from the 24-hex-digit file
// name (spec §6).
func NewSession(src PageSource, timeline, segID, segNo uint32) *Session {
	return &Session{
		src:        src,
		TimelineID: timeline,
		SegID:      segID,
		SegNo:      segNo,
		pageOff:    -int64(PageSize),
		scratch:    make([]byte, 4*PageSize),
	}
}

// readPage pulls the next physical page from the source into s.pageBuf,
// advances pageOff, and parses its header. Returns false (no error) on
// clean EOF.
func (s *Session) readPage() (bool, error) {
	err := s.src.ReadPage(s.pageBuf[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(ErrIO, err.Error())
	}
	s.pageOff += int64(PageSize)

	hdr, err := ParsePageHeader(s.pageBuf[:])
	if err != nil {
		return false, err
	}
	if hdr.Magic != XLOGPageMagic {
		log.Warnf("bogus page magic number %04X at offset %X", hdr.Magic, s.pageOff)
	}
	s.curHeader = hdr
	return true, nil
}

// curLogPosition computes the current logical position from segment
// identity and in-segment offsets (spec §3.1, scenario 6).
func (s *Session) curLogPosition() LogPosition {
	xrecoff := uint64(s.SegNo)*uint64(SegmentSize) + uint64(s.pageOff) + uint64(s.recOff)
	return LogPosition{XLogID: s.SegID, XRecOff: uint32(xrecoff)}
}

// ReadRecord implements spec §4.1's algorithm verbatim, grounded on
// xlogtranslate.c's reentrant ReadRecord/RecordIsValid.
func (s *Session) ReadRecord() (*Record, ReadResult, error) {
	retries := 0

restart:
	for s.recOff <= 0 || s.recOff > PageSize-RecordHeaderSize {
		ok, err := s.readPage()
		if err != nil {
			return nil, ReadFail, err
		}
		if !ok {
			return nil, ReadEOF, nil
		}
		s.recOff = s.curHeader.HeaderSize
		if s.curHeader.Info & ^uint16(XLPLongHeader) != 0 {
			log.Warnf("unexpected page info flags %04X at offset %X", s.curHeader.Info, s.pageOff)
			if s.curHeader.Info&XLPFirstIsContRecord != 0 {
				cont, err := ParseContRecordHeader(s.pageBuf[:], s.recOff)
				if err != nil {
					return nil, ReadFail, err
				}
				log.Warnf("skipping unexpected continuation record at offset %X", s.pageOff)
				s.recOff += maxAlign(int(cont.RemLen) + ContRecordHeaderSize)
			}
		}
	}

	s.curRecPtr = s.curLogPosition()
	hdr, err := parseRecordHeader(s.pageBuf[s.recOff:])
	if err != nil {
		return nil, ReadFail, err
	}

	if hdr.Len == 0 {
		if hdr.IsXLogSwitch() {
			return &Record{Header: hdr, Pos: s.curRecPtr}, ReadSwitch, nil
		}
		log.Warnf("record with zero len at %s", s.curRecPtr)
		s.recOff = 0
		retries++
		if retries > 4 {
			return nil, ReadFail, errors.Wrap(ErrFormat, "too many zero-length records")
		}
		goto restart
	}

	minLen := uint32(RecordHeaderSize) + hdr.Len
	maxLen := minLen + MaxBackupBlocks*(BackupBlockHeaderSize+PageSize)
	if hdr.TotalLen < minLen || hdr.TotalLen > maxLen {
		return nil, ReadFail, errors.Wrapf(ErrFormat,
			"invalid record length (expected %d~%d, actual %d) at %s",
			minLen, maxLen, hdr.TotalLen, s.curRecPtr)
	}
	totalLen := hdr.TotalLen

	if totalLen > uint32(len(s.scratch)) {
		newSize := totalLen + (PageSize - totalLen%PageSize)
		if newSize < 4*PageSize {
			newSize = 4 * PageSize
		}
		s.scratch = make([]byte, newSize)
	}

	avail := PageSize - int(s.curRecPtr.XRecOff)%PageSize
	if int(totalLen) > avail {
		return s.readContinuation(hdr, totalLen, avail)
	}

	copy(s.scratch, s.pageBuf[s.recOff:s.recOff+int(totalLen)])
	rec := &Record{Header: hdr, Pos: s.curRecPtr, Raw: s.scratch[:totalLen]}
	s.recOff += maxAlign(int(totalLen))
	if err := s.validateCRC(rec); err != nil {
		return nil, ReadFail, err
	}
	s.prevRecPtr = s.curRecPtr
	return rec, ReadOK, nil
}

// readContinuation implements spec §4.1 step 7: the multi-page
// reassembly loop.
func (s *Session) readContinuation(hdr RecordHeader, totalLen uint32, firstLen int) (*Record, ReadResult, error) {
	copy(s.scratch, s.pageBuf[s.recOff:s.recOff+firstLen])
	gotLen := uint32(firstLen)
	bufOff := firstLen

	for {
		ok, err := s.readPage()
		if err != nil {
			return nil, ReadFail, err
		}
		if !ok {
			return nil, ReadFail, errors.Wrap(ErrIO, "unable to read continuation page")
		}
		if s.curHeader.Info&XLPFirstIsContRecord == 0 {
			return nil, ReadFail, errors.Wrapf(ErrFormat,
				"no ContRecord flag in segment seg %d off %X", s.SegNo, s.pageOff)
		}
		pageHeaderSize := s.curHeader.HeaderSize
		cont, err := ParseContRecordHeader(s.pageBuf[:], pageHeaderSize)
		if err != nil {
			return nil, ReadFail, err
		}
		if cont.RemLen == 0 || totalLen != cont.RemLen+gotLen {
			return nil, ReadFail, errors.Wrapf(ErrFormat,
				"invalid cont-record len %d in seg %d off %X", cont.RemLen, s.SegNo, s.pageOff)
		}

		dataStart := pageHeaderSize + ContRecordHeaderSize
		avail := PageSize - dataStart
		if int(cont.RemLen) > avail {
			copy(s.scratch[bufOff:], s.pageBuf[dataStart:dataStart+avail])
			gotLen += uint32(avail)
			bufOff += avail
			continue
		}
		copy(s.scratch[bufOff:], s.pageBuf[dataStart:dataStart+int(cont.RemLen)])
		s.recOff = maxAlign(dataStart + int(cont.RemLen))
		break
	}

	rec := &Record{Header: hdr, Pos: s.curRecPtr, Raw: s.scratch[:totalLen]}
	if err := s.validateCRC(rec); err != nil {
		return nil, ReadFail, err
	}
	s.prevRecPtr = s.curRecPtr
	return rec, ReadOK, nil
}

// validateCRC implements spec §4.2, grounded on xlogtranslate.c's
// RecordIsValid.
func (s *Session) validateCRC(rec *Record) error {
	crc := newCRC32()
	payload := rec.Payload()
	crc.update(payload)

	blkOff := rec.backupBlocksStart()
	for i := 0; i < MaxBackupBlocks; i++ {
		if !rec.Header.HasBackupBlock(i) {
			continue
		}
		bb, err := ParseBackupBlockHeader(rec.Raw, blkOff)
		if err != nil {
			return err
		}
		if int(bb.HoleOffset)+int(bb.HoleLength) > PageSize {
			return errors.Wrapf(ErrFormat, "incorrect hole size in record at %s", rec.Pos)
		}
		blen := BackupBlockHeaderSize + PageSize - int(bb.HoleLength)
		if blkOff+blen > len(rec.Raw) {
			return errors.Wrapf(ErrFormat, "backup block overruns record at %s", rec.Pos)
		}
		crc.update(rec.Raw[blkOff : blkOff+blen])
		blkOff += blen
	}

	skipTotalLenCheck := rec.Header.Info&XLRBkpRemovableFlag != 0 && rec.Header.Info&XLRBkpBlockMask == 0
	if !skipTotalLenCheck {
		if blkOff != len(rec.Raw) {
			return errors.Wrapf(ErrFormat, "incorrect total length in record at %s", rec.Pos)
		}
	}

	// Cover xl_xid, xl_len, xl_info, xl_rmid and xl_prev, skipping xl_tot_len
	// (legitimately mutable when backup blocks are stripped on replay) and
	// the CRC field itself, which cannot sensibly checksum its own bytes.
	const crcFieldOffset = 24
	crc.update(rec.Raw[4:crcFieldOffset])
	if crc.final() != rec.Header.CRC {
		return errors.Wrapf(ErrFormat, "incorrect resource manager data checksum in record at %s", rec.Pos)
	}
	return nil
}
