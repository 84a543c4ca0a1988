//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"rekindle/core"
	"rekindle/recovery"
)

// flashPageSize covers one RP2040 program page. The recovery record fits
// well inside it; the whole page is rewritten on every save.
const flashPageSize = 256

var errRecordTooBig = errors.New("record exceeds flash page")

// flashMedium implements core.RecordMedium on the first erase sector of
// the on-chip flash data area (the space TinyGo reserves past the program
// image). An erased sector reads 0xFF in every byte; the recovery store
// treats that pattern as an empty slot, so a fresh or purged device
// boots without a resume offer.
type flashMedium struct {
	page [flashPageSize]byte
}

func newFlashMedium() *flashMedium {
	if recovery.RecordSize > flashPageSize {
		panic("recovery record larger than flash page")
	}
	return &flashMedium{}
}

func (m *flashMedium) Ready() bool {
	return machine.Flash.Size() > flashPageSize
}

func (m *flashMedium) Read(buf []byte) error {
	_, err := machine.Flash.ReadAt(buf, 0)
	return err
}

// Write rewrites the record page. One erase, one program; no retry, so
// the emergency path bounds its time in flash.
func (m *flashMedium) Write(data []byte) error {
	if len(data) > flashPageSize {
		return errRecordTooBig
	}
	for i := range m.page {
		m.page[i] = 0xFF
	}
	copy(m.page[:], data)

	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return err
	}
	_, err := machine.Flash.WriteAt(m.page[:], 0)
	return err
}

func (m *flashMedium) Erase() error {
	return machine.Flash.EraseBlocks(0, 1)
}

var _ core.RecordMedium = (*flashMedium)(nil)
