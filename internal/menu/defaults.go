package menu

// DefaultGroups returns the stations-manage back-office menu tree.
func DefaultGroups() []Group {
	return []Group{
		{
			Key:   GroupBasicData,
			Title: "기초자료",
			Items: []Item{
				{Text: "주유소 사업자 등록", Icon: "fas fa-building", Href: "/stations-manage/business-registration/"},
				{Text: "유종 및 유외상품 등록", Icon: "fas fa-gas-pump", Href: "/stations-manage/product-registration/"},
				{Text: "탱크 정보 등록", Icon: "fas fa-cube", Href: "/stations-manage/tank-registration/"},
				{Text: "주유기 노즐 정보 등록", Icon: "fas fa-tint", Href: "/stations-manage/nozzle-registration/"},
				{Text: "홈로리 차량 등록", Icon: "fas fa-truck", Href: "/stations-manage/homelori-registration/"},
				{Text: "결제 형태 등록", Icon: "fas fa-credit-card", Href: "/stations-manage/payment-registration/"},
				{
					Text: "기초 자료(값) 등록",
					Icon: "fas fa-database",
					Href: Expand,
					Items: []Item{
						{Text: "탱크 기초재고", Icon: "fas fa-cube", Href: "/stations-manage/tank-inventory/"},
						{Text: "주유기 기초 계기자료", Icon: "fas fa-tachometer-alt", Href: "/stations-manage/dispenser-meter/"},
						{Text: "유외상품 기초재고", Icon: "fas fa-boxes", Href: "/stations-manage/product-inventory/"},
						{Text: "외상채권 기초잔액", Icon: "fas fa-hand-holding-usd", Href: "/stations-manage/receivables/"},
					},
				},
			},
		},
		{
			Key:   GroupCustomerManagement,
			Title: "거래처관리",
			Items: []Item{
				{Text: "거래처 등록 및 수정", Icon: "fas fa-user-edit", Href: "/stations-manage/customer-registration/"},
				{Text: "차량 / 외상카드 등록", Icon: "fas fa-credit-card", Href: "/stations-manage/vehicle-credit-registration/"},
			},
		},
		{
			Key:   GroupPriceManagement,
			Title: "단가관리",
			Items: []Item{
				{Text: "기준 단가 입력", Icon: "fas fa-dollar-sign", Href: "/stations-manage/standard-price/"},
				{Text: "할인 단가 설정", Icon: "fas fa-percentage", Href: "/stations-manage/discount-price/"},
			},
		},
	}
}

// DefaultShortcuts returns the menu-bar entry points.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Name: "basic-data", Group: GroupBasicData, Title: "기초자료"},
		{Name: "customer-management", Group: GroupCustomerManagement, Title: "거래처관리"},
		{Name: "price-management", Group: GroupPriceManagement, Title: "단가관리"},
	}
}
