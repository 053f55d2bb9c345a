package services

import (
	"errors"
	"testing"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"
)

func TestBuildQuote(t *testing.T) {
	percent := models.Coupon{Code: "TEN", DiscountType: constants.DiscountPercentage, DiscountValue: 10, MaxDiscount: 15000}
	fixed := models.Coupon{Code: "FIVE", DiscountType: constants.DiscountFixed, DiscountValue: 5000}
	big := models.Coupon{Code: "BIG", DiscountType: constants.DiscountFixed, DiscountValue: 500000}
	vip := models.Coupon{Code: "VIP", DiscountType: constants.DiscountFixed, DiscountValue: 1000, MinPurchase: 300000}

	tests := []struct {
		name    string
		nightly int64
		in, out time.Time
		coupons []models.Coupon
		points  int64
		balance int64
		want    Quote
		wantErr apperrors.ErrorCode
	}{
		{
			name:    "two nights no discount",
			nightly: 100000, in: day(1), out: day(3),
			want: Quote{Nights: 2, Nightly: 100000, Total: 200000, Final: 200000},
		},
		{
			name:    "partial day counts as a night",
			nightly: 100000, in: day(1).Add(14 * time.Hour), out: day(2).Add(11 * time.Hour),
			want: Quote{Nights: 1, Nightly: 100000, Total: 100000, Final: 100000},
		},
		{
			name:    "percentage capped then fixed then points",
			nightly: 100000, in: day(1), out: day(3),
			coupons: []models.Coupon{percent, fixed},
			points:  1000, balance: 2000,
			want: Quote{Nights: 2, Nightly: 100000, Total: 200000, CouponDiscount: 20000, PointsUsed: 1000, Discount: 21000, Final: 179000},
		},
		{
			name:    "fixed coupon never goes below zero",
			nightly: 100000, in: day(1), out: day(2),
			coupons: []models.Coupon{big},
			want:    Quote{Nights: 1, Nightly: 100000, Total: 100000, CouponDiscount: 100000, Discount: 100000, Final: 0},
		},
		{
			name:    "check-out before check-in",
			nightly: 100000, in: day(3), out: day(1),
			wantErr: apperrors.ErrCodeValidation,
		},
		{
			name:    "minimum purchase not met",
			nightly: 100000, in: day(1), out: day(2),
			coupons: []models.Coupon{vip},
			wantErr: apperrors.ErrCodeValidation,
		},
		{
			name:    "points above balance",
			nightly: 100000, in: day(1), out: day(2),
			points: 3000, balance: 2000,
			wantErr: apperrors.ErrCodeValidation,
		},
		{
			name:    "points above remaining amount",
			nightly: 1000, in: day(1), out: day(2),
			points: 2000, balance: 5000,
			wantErr: apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuote(tt.nightly, tt.in, tt.out, tt.coupons, tt.points, tt.balance)
			if tt.wantErr != "" {
				assertCode(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("quote = %+v\nwant    %+v", got, tt.want)
			}
		})
	}
}

func TestBuildQuotePointsErrorKind(t *testing.T) {
	_, err := BuildQuote(100000, day(1), day(2), nil, 3000, 2000)
	if !errors.Is(err, apperrors.ErrInsufficientPoint) {
		t.Fatalf("err = %v, want insufficient points", err)
	}
}

func TestCouponDiscountPercentageRoundsDown(t *testing.T) {
	c := &models.Coupon{DiscountType: constants.DiscountPercentage, DiscountValue: 15}
	off, err := CouponDiscount(c, 33333, 33333)
	if err != nil {
		t.Fatal(err)
	}
	if off != 4999 {
		t.Errorf("discount = %d, want 4999", off)
	}
}

func TestAccruedPoints(t *testing.T) {
	cases := map[int64]int64{
		0:      0,
		-100:   0,
		99:     0,
		187000: 1870,
		199999: 1999,
	}
	for amount, want := range cases {
		if got := AccruedPoints(amount); got != want {
			t.Errorf("AccruedPoints(%d) = %d, want %d", amount, got, want)
		}
	}
}

func TestNights(t *testing.T) {
	if got := models.Nights(day(1), day(1)); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
	if got := models.Nights(day(1), day(8)); got != 7 {
		t.Errorf("one week = %d, want 7", got)
	}
}
