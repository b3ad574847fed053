package fat12_test

import (
	"encoding/binary"
)

// buildBootSector renders a 512-byte BPB with the fields this package's
// validator inspects, zero elsewhere.
func buildBootSector(bytesPerSector uint16, sectorsPerCluster uint8, reservedSectors uint16, fatCount uint8, rootEntryCount uint16, totalSectors16 uint16, sectorsPerFat uint16) []byte {
	buf := make([]byte, 512)
	binary.LittleEndian.PutUint16(buf[11:], bytesPerSector)
	buf[13] = sectorsPerCluster
	binary.LittleEndian.PutUint16(buf[14:], reservedSectors)
	buf[16] = fatCount
	binary.LittleEndian.PutUint16(buf[17:], rootEntryCount)
	binary.LittleEndian.PutUint16(buf[19:], totalSectors16)
	binary.LittleEndian.PutUint16(buf[22:], sectorsPerFat)
	buf[38] = 0xF0
	copy(buf[54:62], []byte("FAT12   "))
	return buf
}

// packFAT12 encodes entries (indexed from cluster 0) as a 12-bit packed FAT,
// independently of the package's own decoder, into a buffer of at least
// minSize bytes.
func packFAT12(entries []uint16, minSize int) []byte {
	size := (len(entries)*3+1)/2 + 2
	if size < minSize {
		size = minSize
	}
	buf := make([]byte, size)

	for i, v := range entries {
		v &= 0x0FFF
		off := i * 3 / 2
		if i%2 == 0 {
			buf[off] = byte(v)
			buf[off+1] = (buf[off+1] &^ 0x0F) | byte(v>>8)
		} else {
			buf[off] = (buf[off] &^ 0xF0) | byte(v<<4)
			buf[off+1] = byte(v >> 4)
		}
	}
	return buf
}

// direntryBytes renders one 32-byte directory entry.
func direntryBytes(name [11]byte, attr uint8, firstCluster uint16, size uint32) []byte {
	buf := make([]byte, 32)
	copy(buf[0:11], name[:])
	buf[11] = attr
	binary.LittleEndian.PutUint16(buf[26:28], firstCluster)
	binary.LittleEndian.PutUint32(buf[28:32], size)
	return buf
}

// name83 renders base/ext as a space-padded 8.3 on-disk name.
func name83(base, ext string) [11]byte {
	var n [11]byte
	for i := range n {
		n[i] = ' '
	}
	copy(n[0:8], base)
	copy(n[8:11], ext)
	return n
}
