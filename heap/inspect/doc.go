// Package inspect renders arena state for humans and tools: a detailed JSON
// map of every used and free span, and a hexdump of block contents.
//
// The JSON map follows the shape of GPU allocator "detailed map" dumps:
//
//	{
//	  "Payload":     {"Base": "0x7f...", "Bytes": 943718},
//	  "Descriptors": {"Base": "0x7f...", "Bytes": 104858, "Capacity": 4369},
//	  "Stats":       {"Blocks": 2, "UsedBytes": 96, ...},
//	  "Suballocations": [
//	    {"Offset": 0, "Size": 64, "Type": "USED"},
//	    {"Offset": 64, "Size": 32, "Type": "FREE"},
//	    ...
//	  ]
//	}
package inspect
