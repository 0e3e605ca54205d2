// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

//go:build linux

package bus

import (
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// DEV_MEM is the default physical memory device.
const DEV_MEM = "/dev/mem"

type window struct {
	Region
	offset uint32 // Offset of Region.Base in data (page alignment slack).
	data   []byte
}

// Mmap maps windows of a physical memory device into the process.
// Accesses outside every window are dropped (writes) or read as zero.
type Mmap struct {
	file    *os.File
	windows []window
}

var _ Bus = (*Mmap)(nil)

// OpenMmap maps each region of the device at path (normally DEV_MEM).
func OpenMmap(path string, regions ...Region) (mm *Mmap, err error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s", path)
	}

	mm = &Mmap{file: file}
	defer func() {
		if err != nil {
			mm.Close()
			mm = nil
		}
	}()

	pagesize := uint32(os.Getpagesize())
	for _, region := range regions {
		if region.Size == 0 {
			return mm, errors.Annotatef(ErrRegionEmpty, "region 0x%08x", region.Base)
		}
		offset := region.Base % pagesize
		base := region.Base - offset
		length := int(offset + region.Size)
		var data []byte
		data, err = unix.Mmap(int(file.Fd()), int64(base), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return mm, errors.Annotatef(err, "mmap 0x%08x+0x%x", region.Base, region.Size)
		}
		log.Debugf("bus: mapped %s 0x%08x+0x%x", path, region.Base, region.Size)
		mm.windows = append(mm.windows, window{Region: region, offset: offset, data: data})
	}

	return
}

func (mm *Mmap) word(addr uint32) *uint32 {
	for n := range mm.windows {
		win := &mm.windows[n]
		if win.Contains(addr) && win.Contains(addr+3) {
			off := win.offset + (addr - win.Base)
			return (*uint32)(unsafe.Pointer(&win.data[off]))
		}
	}
	log.Warn(ErrUnmapped(addr))
	return nil
}

func (mm *Mmap) Read32(addr uint32) (value uint32) {
	if ptr := mm.word(addr); ptr != nil {
		value = atomic.LoadUint32(ptr)
	}
	return
}

func (mm *Mmap) Write32(addr uint32, value uint32) {
	if ptr := mm.word(addr); ptr != nil {
		atomic.StoreUint32(ptr, value)
	}
}

// Close unmaps every window and closes the device.
func (mm *Mmap) Close() (err error) {
	for _, win := range mm.windows {
		if uerr := unix.Munmap(win.data); uerr != nil && err == nil {
			err = errors.Trace(uerr)
		}
	}
	mm.windows = nil
	if mm.file != nil {
		if cerr := mm.file.Close(); cerr != nil && err == nil {
			err = errors.Trace(cerr)
		}
		mm.file = nil
	}
	return
}
