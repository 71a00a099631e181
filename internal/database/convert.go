package database

import "github.com/jimmysun0815/snow-api/internal/types"

func resortToModel(r types.Resort) ResortModel {
	return ResortModel{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         r.Name,
		Location:     r.Location,
		Lat:          r.Lat,
		Lon:          r.Lon,
		ElevationMin: r.ElevationMin,
		ElevationMax: r.ElevationMax,
		Boundary:     JSONColumn[[]types.LonLat]{Data: r.Boundary},
		Address:      r.Address,
		City:         r.City,
		ZipCode:      r.ZipCode,
		Phone:        r.Phone,
		Website:      r.Website,
		OpeningHours: JSONColumn[*types.OpeningHours]{Data: r.OpeningHours},
		DataSource:   string(r.DataSource),
		SourceURL:    r.SourceURL,
		SourceID:     r.SourceID,
		Enabled:      r.Enabled,
	}
}

func modelToResort(m ResortModel) types.Resort {
	return types.Resort{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		Location:     m.Location,
		Lat:          m.Lat,
		Lon:          m.Lon,
		ElevationMin: m.ElevationMin,
		ElevationMax: m.ElevationMax,
		Boundary:     m.Boundary.Data,
		Address:      m.Address,
		City:         m.City,
		ZipCode:      m.ZipCode,
		Phone:        m.Phone,
		Website:      m.Website,
		OpeningHours: m.OpeningHours.Data,
		DataSource:   types.DataSource(m.DataSource),
		SourceURL:    m.SourceURL,
		SourceID:     m.SourceID,
		Enabled:      m.Enabled,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func conditionToModel(c types.ConditionSnapshot) ConditionModel {
	return ConditionModel{
		ResortID:    c.ResortID,
		Timestamp:   c.Timestamp,
		Status:      string(c.Status),
		NewSnow:     c.NewSnow,
		BaseDepth:   c.BaseDepth,
		LiftsOpen:   c.LiftsOpen,
		LiftsTotal:  c.LiftsTotal,
		TrailsOpen:  c.TrailsOpen,
		TrailsTotal: c.TrailsTotal,
		Temperature: c.Temperature,
		Extra:       JSONColumn[types.ConditionExtra]{Data: c.Extra},
	}
}

func modelToCondition(m ConditionModel) types.ConditionSnapshot {
	return types.ConditionSnapshot{
		ID:          m.ID,
		ResortID:    m.ResortID,
		Timestamp:   m.Timestamp,
		Status:      types.Status(m.Status),
		NewSnow:     m.NewSnow,
		BaseDepth:   m.BaseDepth,
		LiftsOpen:   m.LiftsOpen,
		LiftsTotal:  m.LiftsTotal,
		TrailsOpen:  m.TrailsOpen,
		TrailsTotal: m.TrailsTotal,
		Temperature: m.Temperature,
		Extra:       m.Extra.Data,
	}
}

func weatherToModel(w types.WeatherSnapshot) WeatherModel {
	return WeatherModel{
		ResortID:            w.ResortID,
		Timestamp:           w.Timestamp,
		Temperature:         w.Temperature,
		ApparentTemperature: w.ApparentTemperature,
		Humidity:            w.Humidity,
		WindSpeedKph:        w.Wind.SpeedKph,
		WindDegrees:         w.Wind.Degrees,
		WindCompass:         w.Wind.Compass,
		FreezingLevel:       w.FreezingLevel,
		FreezingLevel24hAvg: w.FreezingLevel24hAvg,
		AvgWindspeed24h:     w.AvgWindspeed24h,
		Snowfall24h:         w.Snowfall24h,
		Precipitation24h:    w.Precipitation24h,
		TempBase:            w.TempBase,
		TempMid:             w.TempMid,
		TempSummit:          w.TempSummit,
		Sunrise:             w.Sunrise,
		Sunset:              w.Sunset,
		TempRangeMin:        w.TempRangeMin,
		TempRangeMax:        w.TempRangeMax,
		Hourly:              JSONColumn[[]types.HourlyForecast]{Data: w.Hourly},
		Daily:               JSONColumn[[]types.DailyForecast]{Data: w.Daily},
	}
}

func modelToWeather(m WeatherModel) types.WeatherSnapshot {
	return types.WeatherSnapshot{
		ID:                  m.ID,
		ResortID:            m.ResortID,
		Timestamp:           m.Timestamp,
		Temperature:         m.Temperature,
		ApparentTemperature: m.ApparentTemperature,
		Humidity:            m.Humidity,
		Wind: types.WindInfo{
			SpeedKph: m.WindSpeedKph,
			Degrees:  m.WindDegrees,
			Compass:  m.WindCompass,
		},
		FreezingLevel:       m.FreezingLevel,
		FreezingLevel24hAvg: m.FreezingLevel24hAvg,
		AvgWindspeed24h:     m.AvgWindspeed24h,
		Snowfall24h:         m.Snowfall24h,
		Precipitation24h:    m.Precipitation24h,
		TempBase:            m.TempBase,
		TempMid:             m.TempMid,
		TempSummit:          m.TempSummit,
		Sunrise:             m.Sunrise,
		Sunset:              m.Sunset,
		TempRangeMin:        m.TempRangeMin,
		TempRangeMax:        m.TempRangeMax,
		Hourly:              m.Hourly.Data,
		Daily:               m.Daily.Data,
	}
}

func webcamToModel(w types.Webcam) WebcamModel {
	return WebcamModel{
		ResortID:       w.ResortID,
		WebcamUUID:     w.WebcamUUID,
		Title:          w.Title,
		ImageURL:       w.ImageURL,
		ThumbnailURL:   w.ThumbnailURL,
		VideoStreamURL: w.VideoStreamURL,
		IsVideo:        w.IsVideo,
		Featured:       w.Featured,
		LastUpdated:    w.LastUpdated,
		Source:         w.Source,
	}
}

func modelToWebcam(m WebcamModel) types.Webcam {
	return types.Webcam{
		ID:             m.ID,
		ResortID:       m.ResortID,
		WebcamUUID:     m.WebcamUUID,
		Title:          m.Title,
		ImageURL:       m.ImageURL,
		ThumbnailURL:   m.ThumbnailURL,
		VideoStreamURL: m.VideoStreamURL,
		IsVideo:        m.IsVideo,
		Featured:       m.Featured,
		LastUpdated:    m.LastUpdated,
		Source:         m.Source,
	}
}

func trailToModel(resortID int, t types.Trail) TrailModel {
	return TrailModel{
		ResortID:     resortID,
		OSMID:        t.OSMID,
		OSMType:      t.OSMType,
		Name:         t.Name,
		Difficulty:   string(t.Difficulty),
		PisteType:    t.PisteType,
		Geometry:     JSONColumn[[]types.LonLat]{Data: t.Geometry},
		LengthMeters: t.LengthMeters,
		Lit:          t.Lit,
		Grooming:     t.Grooming,
		Width:        t.Width,
		Ref:          t.Ref,
	}
}

func modelToTrail(m TrailModel) types.Trail {
	return types.Trail{
		ID:           m.ID,
		ResortID:     m.ResortID,
		OSMID:        m.OSMID,
		OSMType:      m.OSMType,
		Name:         m.Name,
		Difficulty:   types.Difficulty(m.Difficulty),
		PisteType:    m.PisteType,
		Geometry:     m.Geometry.Data,
		LengthMeters: m.LengthMeters,
		Lit:          m.Lit,
		Grooming:     m.Grooming,
		Width:        m.Width,
		Ref:          m.Ref,
	}
}
