package engine

// canonicalPipeline is the seven-stage example almanac.
func canonicalPipeline() Pipeline {
	stage := func(name string, rows ...[3]uint64) Stage {
		st := Stage{Name: name}
		for _, r := range rows {
			st.Rules = append(st.Rules, Rule{DestStart: r[0], SourceStart: r[1], Length: r[2]})
		}
		return st
	}
	return Pipeline{Stages: []Stage{
		stage("seed-to-soil", [3]uint64{50, 98, 2}, [3]uint64{52, 50, 48}),
		stage("soil-to-fertilizer", [3]uint64{0, 15, 37}, [3]uint64{37, 52, 2}, [3]uint64{39, 0, 15}),
		stage("fertilizer-to-water", [3]uint64{49, 53, 8}, [3]uint64{0, 11, 42}, [3]uint64{42, 0, 7}, [3]uint64{57, 7, 4}),
		stage("water-to-light", [3]uint64{88, 18, 7}, [3]uint64{18, 25, 70}),
		stage("light-to-temperature", [3]uint64{45, 77, 23}, [3]uint64{81, 45, 19}, [3]uint64{68, 64, 13}),
		stage("temperature-to-humidity", [3]uint64{0, 69, 1}, [3]uint64{1, 0, 69}),
		stage("humidity-to-location", [3]uint64{60, 56, 37}, [3]uint64{56, 93, 4}),
	}}
}
