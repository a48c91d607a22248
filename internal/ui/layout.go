package ui

import (
	"fmt"
	"image/color"

	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

const (
	sectionIndent = unit.Dp(20)
	cellInset     = unit.Dp(4)
	labelWidth    = unit.Dp(140)
	valueWidth    = unit.Dp(64)
)

type nodeStyle struct {
	th        *material.Theme
	expanded  *widget.Icon
	collapsed *widget.Icon
	grid      color.NRGBA
}

// layout draws the recorded frame as a scrolling list.
func (c *gioContext) layout(gtx layout.Context, s nodeStyle) layout.Dimensions {
	return material.List(s.th, &c.list).Layout(gtx, len(c.nodes), func(gtx layout.Context, i int) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return s.layoutNode(gtx, c.nodes[i])
		})
	})
}

func (s nodeStyle) layoutNode(gtx layout.Context, n *node) layout.Dimensions {
	switch n.kind {
	case nodeText:
		lbl := material.Body1(s.th, n.label)
		lbl.Color = n.color
		return lbl.Layout(gtx)
	case nodeSection:
		return s.layoutSection(gtx, n)
	case nodeTable:
		return s.layoutTable(gtx, n)
	case nodeIndicator:
		return s.layoutIndicator(gtx, n)
	case nodeSlider:
		return s.layoutSlider(gtx, n)
	}
	return layout.Dimensions{}
}

func (s nodeStyle) layoutSection(gtx layout.Context, n *node) layout.Dimensions {
	header := func(gtx layout.Context) layout.Dimensions {
		return n.section.click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					icon := s.collapsed
					if n.section.open {
						icon = s.expanded
					}
					if icon == nil {
						return layout.Dimensions{}
					}
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(20))
					return icon.Layout(gtx, s.th.Fg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
				layout.Rigid(material.Subtitle1(s.th, n.label).Layout),
			)
		})
	}
	if !n.section.open {
		return header(gtx)
	}

	children := make([]layout.FlexChild, 0, 1+len(n.children)*2)
	children = append(children, layout.Rigid(header))
	for _, child := range n.children {
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: sectionIndent}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return s.layoutNode(gtx, child)
				})
			}),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (s nodeStyle) layoutTable(gtx layout.Context, n *node) layout.Dimensions {
	rows := make([]layout.FlexChild, 0, len(n.rows))
	for _, row := range n.rows {
		rows = append(rows, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			cells := make([]layout.FlexChild, n.columns)
			for j := range cells {
				var cell *node
				if j < len(row) {
					cell = row[j]
				}
				cells[j] = layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return widget.Border{Color: s.grid, Width: unit.Dp(1)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Constraints.Max.X
						return layout.UniformInset(cellInset).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							if cell == nil {
								return layout.Dimensions{Size: gtx.Constraints.Min}
							}
							return s.layoutNode(gtx, cell)
						})
					})
				})
			}
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, cells...)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}

// layoutIndicator draws a checkbox that mirrors the button state. Pending
// clicks are consumed and the value reset so the user cannot toggle it.
func (s nodeStyle) layoutIndicator(gtx layout.Context, n *node) layout.Dimensions {
	n.check.Update(gtx)
	n.check.Value = n.on
	return material.CheckBox(s.th, n.check, n.label).Layout(gtx)
}

// layoutSlider draws a read-only slider. Drags are consumed and the
// position reset to the device value every frame.
func (s nodeStyle) layoutSlider(gtx layout.Context, n *node) layout.Dimensions {
	n.float.Update(gtx)
	n.float.Value = sliderFraction(n.value, n.min, n.max)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(labelWidth)
			gtx.Constraints.Max.X = gtx.Constraints.Min.X
			return material.Body2(s.th, n.label).Layout(gtx)
		}),
		layout.Flexed(1, material.Slider(s.th, n.float).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(valueWidth)
			lbl := material.Body2(s.th, fmt.Sprintf(n.format, n.value))
			lbl.Alignment = text.End
			return lbl.Layout(gtx)
		}),
	)
}
