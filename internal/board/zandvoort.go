package board

import "github.com/tracklight/replay/pkg/core"

// DefaultLayout returns the compiled-in Zandvoort board: 96 indicator
// positions tracing the circuit in display order. Coordinates are in the
// board's own planar space.
func DefaultLayout() *Layout {
	layout, err := NewLayout(zandvoortPositions())
	if err != nil {
		panic(err)
	}
	return layout
}

func zandvoortPositions() []core.Position {
	return []core.Position{
		{ID: 1, X: 6413, Y: 33},
		{ID: 2, X: 6007, Y: 197},
		{ID: 3, X: 5652, Y: 444},
		{ID: 4, X: 5431, Y: 822},
		{ID: 5, X: 5727, Y: 1143},
		{ID: 6, X: 6141, Y: 1268},
		{ID: 7, X: 6567, Y: 1355},
		{ID: 8, X: 6975, Y: 1482},
		{ID: 9, X: 7328, Y: 1738},
		{ID: 10, X: 7369, Y: 2173},
		{ID: 11, X: 7024, Y: 2448},
		{ID: 12, X: 6592, Y: 2505},
		{ID: 13, X: 6159, Y: 2530},
		{ID: 14, X: 5725, Y: 2525},
		{ID: 15, X: 5288, Y: 2489},
		{ID: 16, X: 4857, Y: 2434},
		{ID: 17, X: 4429, Y: 2356},
		{ID: 18, X: 4004, Y: 2249},
		{ID: 19, X: 3592, Y: 2122},
		{ID: 20, X: 3181, Y: 1977},
		{ID: 21, X: 2779, Y: 1812},
		{ID: 22, X: 2387, Y: 1624},
		{ID: 23, X: 1988, Y: 1453},
		{ID: 24, X: 1703, Y: 1779},
		{ID: 25, X: 1271, Y: 1738},
		{ID: 26, X: 1189, Y: 1314},
		{ID: 27, X: 1257, Y: 884},
		{ID: 28, X: 1333, Y: 454},
		{ID: 29, X: 1409, Y: 25},
		{ID: 30, X: 1485, Y: -405},
		{ID: 31, X: 1558, Y: -835},
		{ID: 32, X: 1537, Y: -1267},
		{ID: 33, X: 1208, Y: -1555},
		{ID: 34, X: 779, Y: -1606},
		{ID: 35, X: 344, Y: -1604},
		{ID: 36, X: -88, Y: -1539},
		{ID: 37, X: -482, Y: -1346},
		{ID: 38, X: -785, Y: -1038},
		{ID: 39, X: -966, Y: -644},
		{ID: 40, X: -1015, Y: -206},
		{ID: 41, X: -923, Y: 231},
		{ID: 42, X: -762, Y: 650},
		{ID: 43, X: -591, Y: 1078},
		{ID: 44, X: -423, Y: 1497},
		{ID: 45, X: -254, Y: 1915},
		{ID: 46, X: -86, Y: 2329},
		{ID: 47, X: 83, Y: 2744},
		{ID: 48, X: 251, Y: 3158},
		{ID: 49, X: 416, Y: 3574},
		{ID: 50, X: 588, Y: 3990},
		{ID: 51, X: 755, Y: 4396},
		{ID: 52, X: 920, Y: 4804},
		{ID: 53, X: 1086, Y: 5212},
		{ID: 54, X: 1250, Y: 5615},
		{ID: 55, X: 1418, Y: 6017},
		{ID: 56, X: 1583, Y: 6419},
		{ID: 57, X: 1909, Y: 6702},
		{ID: 58, X: 2306, Y: 6512},
		{ID: 59, X: 2319, Y: 6071},
		{ID: 60, X: 2152, Y: 5660},
		{ID: 61, X: 1988, Y: 5255},
		{ID: 62, X: 1853, Y: 4836},
		{ID: 63, X: 1784, Y: 4407},
		{ID: 64, X: 1779, Y: 3971},
		{ID: 65, X: 1605, Y: 3569},
		{ID: 66, X: 1211, Y: 3375},
		{ID: 67, X: 811, Y: 3188},
		{ID: 68, X: 710, Y: 2755},
		{ID: 69, X: 1116, Y: 2595},
		{ID: 70, X: 1529, Y: 2717},
		{ID: 71, X: 1947, Y: 2848},
		{ID: 72, X: 2371, Y: 2946},
		{ID: 73, X: 2806, Y: 2989},
		{ID: 74, X: 3239, Y: 2946},
		{ID: 75, X: 3665, Y: 2864},
		{ID: 76, X: 4092, Y: 2791},
		{ID: 77, X: 4523, Y: 2772},
		{ID: 78, X: 4945, Y: 2886},
		{ID: 79, X: 5331, Y: 3087},
		{ID: 80, X: 5703, Y: 3315},
		{ID: 81, X: 6105, Y: 3484},
		{ID: 82, X: 6538, Y: 3545},
		{ID: 83, X: 6969, Y: 3536},
		{ID: 84, X: 7402, Y: 3511},
		{ID: 85, X: 7831, Y: 3476},
		{ID: 86, X: 8241, Y: 3335},
		{ID: 87, X: 8549, Y: 3025},
		{ID: 88, X: 8703, Y: 2612},
		{ID: 89, X: 8662, Y: 2173},
		{ID: 90, X: 8451, Y: 1785},
		{ID: 91, X: 8203, Y: 1426},
		{ID: 92, X: 7973, Y: 1053},
		{ID: 93, X: 7777, Y: 664},
		{ID: 94, X: 7581, Y: 275},
		{ID: 95, X: 7274, Y: -35},
		{ID: 96, X: 6839, Y: -46},
	}
}
