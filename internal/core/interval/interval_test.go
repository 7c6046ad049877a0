package interval_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/twofourteen/hr-portal/internal/core/interval"
)

func TestInterval(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Interval Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("ParseSeconds", func() {
	It("parses the seconds form", func() {
		Expect(interval.ParseSeconds(strPtr("90 seconds"))).To(Equal(int64(90)))
		Expect(interval.ParseSeconds(strPtr("1 second"))).To(Equal(int64(1)))
		Expect(interval.ParseSeconds(strPtr("0 seconds"))).To(Equal(int64(0)))
	})

	It("parses the HH:MM:SS form", func() {
		Expect(interval.ParseSeconds(strPtr("01:30:05"))).To(Equal(int64(5405)))
		Expect(interval.ParseSeconds(strPtr("0:0:59"))).To(Equal(int64(59)))
		Expect(interval.ParseSeconds(strPtr("10:00:00"))).To(Equal(int64(36000)))
	})

	It("defaults to zero on unparseable input", func() {
		Expect(interval.ParseSeconds(strPtr("three minutes"))).To(Equal(int64(0)))
		Expect(interval.ParseSeconds(strPtr("1h30m"))).To(Equal(int64(0)))
		Expect(interval.ParseSeconds(strPtr(""))).To(Equal(int64(0)))
		Expect(interval.ParseSeconds(nil)).To(Equal(int64(0)))
	})
})

var _ = Describe("FormatSeconds", func() {
	It("renders the canonical stored form", func() {
		Expect(interval.FormatSeconds(3725)).To(Equal("3725 seconds"))
		Expect(interval.FormatSeconds(0)).To(Equal("0 seconds"))
	})

	It("clamps negative input", func() {
		Expect(interval.FormatSeconds(-5)).To(Equal("0 seconds"))
	})
})

var _ = Describe("round trip", func() {
	It("survives format then parse", func() {
		s := interval.FormatSeconds(7200)
		Expect(interval.ParseSeconds(&s)).To(Equal(int64(7200)))
	})
})
