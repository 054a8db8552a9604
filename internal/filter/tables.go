package filter

// The matrices below are carried over verbatim from the reference filter
// tables; only the representation (Go [][]float64 literals instead of C
// const double[][] arrays) changes.

var motionBlurArr = [][]float64{
	{1, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 1},
}

var boxCrossArr = [][]float64{
	{0, 0, 1, 0, 0},
	{0, 1, 1, 1, 0},
	{1, 1, 1, 1, 1},
	{0, 1, 1, 1, 0},
	{0, 0, 1, 0, 0},
}

var gaussianArr = [][]float64{
	{1, 4, 6, 4, 1},
	{4, 16, 24, 16, 4},
	{6, 24, 36, 24, 6},
	{4, 16, 24, 16, 4},
	{1, 4, 6, 4, 1},
}

var identityArr = [][]float64{
	{0, 0, 0},
	{0, 1, 0},
	{0, 0, 0},
}

var sharpenArr = [][]float64{
	{-1, -1, -1},
	{-1, 9, -1},
	{-1, -1, -1},
}

var embossArr = [][]float64{
	{-1, -1, -1, -1, 0},
	{-1, -1, -1, 0, 1},
	{-1, -1, 0, 1, 1},
	{-1, 0, 1, 1, 1},
	{0, 1, 1, 1, 1},
}

var bigGaussianArr = [][]float64{
	{2, 2, 3, 3, 4, 4, 5, 5, 5, 4, 4, 3, 3, 2, 2},
	{2, 3, 3, 4, 4, 5, 5, 6, 5, 5, 4, 4, 3, 3, 2},
	{3, 3, 4, 5, 5, 6, 6, 7, 6, 6, 5, 5, 4, 3, 3},
	{3, 4, 5, 6, 7, 7, 8, 8, 8, 7, 7, 6, 5, 4, 3},
	{4, 4, 5, 7, 8, 9, 9, 10, 9, 9, 8, 7, 5, 4, 4},
	{4, 5, 6, 7, 9, 10, 11, 11, 11, 10, 9, 7, 6, 5, 4},
	{5, 5, 6, 8, 9, 11, 12, 12, 12, 11, 9, 8, 6, 5, 5},
	{5, 6, 7, 8, 10, 11, 12, 13, 12, 11, 10, 8, 7, 6, 5},
	{5, 5, 6, 8, 9, 11, 12, 12, 12, 11, 9, 8, 6, 5, 5},
	{4, 5, 6, 7, 9, 10, 11, 11, 11, 10, 9, 7, 6, 5, 4},
	{4, 4, 5, 7, 8, 9, 9, 10, 9, 9, 8, 7, 5, 4, 4},
	{3, 4, 5, 6, 7, 7, 8, 8, 8, 7, 7, 6, 5, 4, 3},
	{3, 3, 4, 5, 5, 6, 6, 7, 6, 6, 5, 5, 4, 3, 3},
	{2, 3, 3, 4, 4, 5, 5, 6, 5, 5, 4, 4, 3, 3, 2},
	{2, 2, 3, 3, 4, 4, 5, 5, 5, 4, 4, 3, 3, 2, 2},
}

var medGaussianArr = [][]float64{
	{1, 1, 2, 2, 2, 2, 2, 1, 1},
	{1, 2, 2, 3, 3, 3, 2, 2, 1},
	{2, 2, 3, 4, 5, 4, 3, 2, 2},
	{2, 3, 4, 5, 6, 5, 4, 3, 2},
	{2, 3, 5, 6, 7, 6, 5, 3, 2},
	{2, 3, 4, 5, 6, 5, 4, 3, 2},
	{2, 2, 3, 4, 5, 4, 3, 2, 2},
	{1, 2, 2, 3, 3, 3, 2, 2, 1},
	{1, 1, 2, 2, 2, 2, 2, 1, 1},
}

func boxBlurRow() []float64 {
	row := make([]float64, 15)
	for i := range row {
		row[i] = 1
	}
	return row
}

var boxBlurArr = func() [][]float64 {
	rows := make([][]float64, 15)
	for i := range rows {
		rows[i] = boxBlurRow()
	}
	return rows
}()
