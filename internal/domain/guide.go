package domain

// Guide is a preparedness checklist split by phase.
type Guide struct {
	Before []string `json:"before"`
	During []string `json:"during"`
	After  []string `json:"after"`
}

var guides = map[HazardKind]Guide{
	HazardFlood: {
		Before: []string{
			"Chuẩn bị kế hoạch sơ tán",
			"Dự trữ thực phẩm và nước sạch",
			"Chuẩn bị túi cứu thương",
			"Kiểm tra hệ thống thoát nước",
		},
		During: []string{
			"Di chuyển đến nơi cao hơn",
			"Tránh xa dòng nước chảy",
			"Không lái xe qua vùng ngập",
			"Theo dõi thông tin cảnh báo",
		},
		After: []string{
			"Kiểm tra thiệt hại",
			"Vệ sinh khử trùng",
			"Báo cáo thiệt hại cho chính quyền",
			"Hỗ trợ người bị nạn",
		},
	},
	HazardStorm: {
		Before: []string{
			"Gia cố cửa sổ, mái nhà",
			"Cắt tỉa cây xanh",
			"Dự trữ đồ dùng thiết yếu",
			"Sạc đầy pin các thiết bị",
		},
		During: []string{
			"Ở trong nhà, tránh xa cửa sổ",
			"Không ra ngoài khi bão đổ bộ",
			"Theo dõi tin tức cập nhật",
			"Chuẩn bị sơ cứu",
		},
		After: []string{
			"Kiểm tra thiệt hại cẩn thận",
			"Tránh xa dây điện đứt",
			"Dọn dẹp mảnh vỡ",
			"Báo cáo thiệt hại",
		},
	},
}

// PreparednessGuide returns a copy of the checklist for kind.
func PreparednessGuide(kind HazardKind) (Guide, bool) {
	g, ok := guides[kind]
	if !ok {
		return Guide{}, false
	}
	return Guide{
		Before: append([]string(nil), g.Before...),
		During: append([]string(nil), g.During...),
		After:  append([]string(nil), g.After...),
	}, true
}
