package combo

// PowerSet returns every subset of flags, ordered by the bitmask that selects
// it. Elements keep their input order, and the empty subset comes first.
func PowerSet(flags []Flag) [][]Flag {
	n := len(flags)
	sets := make([][]Flag, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		subset := make([]Flag, 0, n)
		for i, flag := range flags {
			if mask&(1<<i) != 0 {
				subset = append(subset, flag)
			}
		}
		sets = append(sets, subset)
	}
	return sets
}

// Accumulate folds a subset into a single value with bitwise OR, starting at 0.
func Accumulate(subset []Flag) Flag {
	var sum Flag
	for _, flag := range subset {
		sum |= flag
	}
	return sum
}

// Combinations returns the accumulated value of every subset of flags.
func Combinations(flags []Flag) []Flag {
	sets := PowerSet(flags)
	combos := make([]Flag, 0, len(sets))
	for _, subset := range sets {
		combos = append(combos, Accumulate(subset))
	}
	return combos
}

// Jobs builds the format-major cross product of formats and combinations.
func Jobs(formats []Format, combos []Flag) []Job {
	jobs := make([]Job, 0, len(formats)*len(combos))
	for _, format := range formats {
		for _, flags := range combos {
			jobs = append(jobs, Job{Format: format, Flags: flags})
		}
	}
	return jobs
}

// DefaultJobs is every format crossed with every combination of every flag.
func DefaultJobs() []Job {
	return Jobs(Formats(), Combinations(Flags()))
}
