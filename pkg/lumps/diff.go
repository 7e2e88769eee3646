package lumps

// PageDiff counts the differing bytes of one page.
type PageDiff struct {
	Page  int
	Bytes int // Number of differing bytes
	First int // Offset within the page of the first difference
}

// Compare reports every page where a and b differ. Pages are pageSize
// bytes long; a length mismatch is reported as a final page covering
// the missing tail.
func Compare(a, b []byte, pageSize int) []PageDiff {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var diffs []PageDiff
	for start := 0; start < n; start += pageSize {
		end := start + pageSize
		if end > n {
			end = n
		}

		d := PageDiff{Page: start / pageSize, First: -1}
		for i := start; i < end; i++ {
			if a[i] != b[i] {
				if d.First < 0 {
					d.First = i - start
				}
				d.Bytes++
			}
		}
		if d.Bytes > 0 {
			diffs = append(diffs, d)
		}
	}

	if len(a) != len(b) {
		longer := len(a)
		if len(b) > longer {
			longer = len(b)
		}
		diffs = append(diffs, PageDiff{Page: n / pageSize, Bytes: longer - n, First: n % pageSize})
	}

	return diffs
}
