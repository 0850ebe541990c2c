package layout

import (
	"github.com/ByLCY/viereck/flex"
	"github.com/ByLCY/viereck/scene"
)

// convertStyle 把稀疏的场景样式叠加到求解器默认样式上。
func convertStyle(s scene.Style) flex.Style {
	out := flex.DefaultStyle()
	if s.Display != nil && *s.Display == scene.DisplayNone {
		out.Display = flex.DisplayNone
	}
	if s.PositionType != nil && *s.PositionType == scene.PositionAbsolute {
		out.PositionType = flex.PositionAbsolute
	}
	if s.Direction != nil {
		switch *s.Direction {
		case scene.DirectionLTR:
			out.Direction = flex.DirectionLTR
		case scene.DirectionRTL:
			out.Direction = flex.DirectionRTL
		}
	}
	if s.FlexDirection != nil {
		switch *s.FlexDirection {
		case scene.FlexColumn:
			out.FlexDirection = flex.Column
		case scene.FlexRowReverse:
			out.FlexDirection = flex.RowReverse
		case scene.FlexColumnReverse:
			out.FlexDirection = flex.ColumnReverse
		default:
			out.FlexDirection = flex.Row
		}
	}
	if s.FlexWrap != nil {
		switch *s.FlexWrap {
		case scene.Wrap:
			out.FlexWrap = flex.WrapForward
		case scene.WrapReverse:
			out.FlexWrap = flex.WrapReverse
		default:
			out.FlexWrap = flex.NoWrap
		}
	}
	if s.Overflow != nil {
		switch *s.Overflow {
		case scene.OverflowHidden:
			out.Overflow = flex.OverflowHidden
		case scene.OverflowScroll:
			out.Overflow = flex.OverflowScroll
		}
	}
	if s.AlignItems != nil {
		out.AlignItems = convertAlign(string(*s.AlignItems))
	}
	if s.AlignSelf != nil {
		out.AlignSelf = convertAlign(string(*s.AlignSelf))
	}
	if s.AlignContent != nil {
		out.AlignContent = convertAlign(string(*s.AlignContent))
	}
	if s.JustifyContent != nil {
		out.JustifyContent = convertJustify(*s.JustifyContent)
	}
	if s.Position != nil {
		out.Position = convertRect(*s.Position)
	}
	if s.Margin != nil {
		out.Margin = convertRect(*s.Margin)
	}
	if s.Padding != nil {
		out.Padding = convertRect(*s.Padding)
	}
	if s.Border != nil {
		out.Border = convertRect(*s.Border)
	}
	if s.FlexGrow != nil {
		out.FlexGrow = *s.FlexGrow
	}
	if s.FlexShrink != nil {
		out.FlexShrink = *s.FlexShrink
	}
	if s.FlexBasis != nil {
		out.FlexBasis = convertDimension(*s.FlexBasis)
	}
	if s.Size != nil {
		out.Width = convertDimension(s.Size.Width)
		out.Height = convertDimension(s.Size.Height)
	}
	if s.MinSize != nil {
		out.MinWidth = convertDimension(s.MinSize.Width)
		out.MinHeight = convertDimension(s.MinSize.Height)
	}
	if s.MaxSize != nil {
		out.MaxWidth = convertDimension(s.MaxSize.Width)
		out.MaxHeight = convertDimension(s.MaxSize.Height)
	}
	if s.AspectRatio != nil {
		out.AspectRatio = *s.AspectRatio
	}
	return out
}

// convertAlign 处理 align-items / align-self / align-content 共用的取值。
func convertAlign(v string) flex.Align {
	switch v {
	case "FlexStart":
		return flex.AlignFlexStart
	case "FlexEnd":
		return flex.AlignFlexEnd
	case "Center":
		return flex.AlignCenter
	case "Baseline":
		return flex.AlignBaseline
	case "Stretch":
		return flex.AlignStretch
	case "SpaceBetween":
		return flex.AlignSpaceBetween
	case "SpaceAround":
		return flex.AlignSpaceAround
	default:
		return flex.AlignAuto
	}
}

func convertJustify(v scene.JustifyContent) flex.Justify {
	switch v {
	case scene.JustifyFlexEnd:
		return flex.JustifyFlexEnd
	case scene.JustifyCenter:
		return flex.JustifyCenter
	case scene.JustifySpaceBetween:
		return flex.JustifySpaceBetween
	case scene.JustifySpaceAround:
		return flex.JustifySpaceAround
	case scene.JustifySpaceEvenly:
		return flex.JustifySpaceEvenly
	default:
		return flex.JustifyFlexStart
	}
}

func convertRect(r scene.Rect) flex.Edges {
	return flex.Edges{
		Start:  convertDimension(r.Start),
		End:    convertDimension(r.End),
		Top:    convertDimension(r.Top),
		Bottom: convertDimension(r.Bottom),
	}
}

func convertDimension(d scene.Dimension) flex.Value {
	switch d.Kind {
	case scene.DimAuto:
		return flex.Auto()
	case scene.DimPoints:
		return flex.Points(d.Value)
	case scene.DimPercent:
		return flex.Percent(d.Value)
	default:
		return flex.Undefined()
	}
}
