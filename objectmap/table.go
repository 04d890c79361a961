// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

// Package objectmap holds the static, hand-curated table of named
// aggregate types consulted as the last prefix-dispatch rule in the
// type codec: name-keyed, ordered-field-list descriptors prepared
// ahead of time rather than computed from reflection, since these
// types are never described by the external schema XML — their layout
// is hard-coded in the tool.
//
// Entry order and field identity are part of the on-disk contract:
// changing either desynchronizes every stream that uses the affected
// type. The set below covers the directly-confirmed aggregates
// (ConfigExplosion, ValueRange) plus a representative sample of the
// same shape from the Noita entity-scene format this codec targets; it
// is not a claim of exhaustive parity with Noita's full schema set.
package objectmap

import "github.com/NathanSnail/entity-bin/schema"

var table = map[string][]schema.FieldSpec{
	"ValueRange": {
		{Name: "min", TypeString: "float"},
		{Name: "max", TypeString: "float"},
	},
	"ConfigExplosion": {
		{Name: "never_cache", TypeString: "bool"},
		{Name: "load_this_entity", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "explosion_radius", TypeString: "float"},
		{Name: "explosion_sprite", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "explosion_sprite_random_rotation", TypeString: "bool"},
		{Name: "particle_effect", TypeString: "bool"},
		{Name: "camera_shake", TypeString: "float"},
		{Name: "damage", TypeString: "float"},
		{Name: "damage_critical_chance", TypeString: "int"},
		{Name: "min_game_effect_radius", TypeString: "float"},
		{Name: "hole_enabled", TypeString: "bool"},
		{Name: "destroy_non_platform_world", TypeString: "bool"},
		{Name: "ray_energy", TypeString: "int"},
		{Name: "ray_energy_emission_probability", TypeString: "float"},
		{Name: "knockback_force", TypeString: "float"},
		{Name: "damage_type", TypeString: "DamageTypeEnum"},
		{Name: "create_cell_probability", TypeString: "int"},
		{Name: "audio_enabled", TypeString: "bool"},
		{Name: "audio_event_name", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
	},
	"ConfigDamagesOnCollision": {
		{Name: "min_velocity", TypeString: "float"},
		{Name: "mass_required_for_kills", TypeString: "float"},
		{Name: "pickup_at_obstacle", TypeString: "bool"},
		{Name: "damage_to_health_percent", TypeString: "float"},
		{Name: "damage_type", TypeString: "DamageTypeEnum"},
		{Name: "hit_damage_type_modifiers", TypeString: "struct LensValue<float>"},
		{Name: "destroy_horizontally_slow_moving_projectiles", TypeString: "bool"},
		{Name: "velocity_damage_modifier", TypeString: "class ceng::math::CVector2<float>"},
	},
	"ConfigGore": {
		{Name: "blood_material", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "gib_material", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "require_explosion_to_gib", TypeString: "bool"},
		{Name: "play_sound", TypeString: "bool"},
		{Name: "gore_particle_count", TypeString: "int"},
		{Name: "gore_velocity_min", TypeString: "float"},
		{Name: "gore_velocity_max", TypeString: "float"},
		{Name: "full_gore_probability", TypeString: "float"},
		{Name: "ragdoll_material_amount", TypeString: "ValueRange"},
	},
	"ConfigPhysicsBody": {
		{Name: "image_file", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "is_root", TypeString: "bool"},
		{Name: "destroy_body_if_entity_destroyed", TypeString: "bool"},
		{Name: "linear_damping", TypeString: "float"},
		{Name: "angular_damping", TypeString: "float"},
		{Name: "allow_sleeping", TypeString: "bool"},
		{Name: "density", TypeString: "float"},
		{Name: "friction", TypeString: "float"},
		{Name: "restitution", TypeString: "float"},
	},
	"ConfigBob": {
		{Name: "amount", TypeString: "float"},
		{Name: "speed", TypeString: "float"},
		{Name: "offset", TypeString: "class ceng::math::CVector2<float>"},
	},
	"ConfigWalkingBehaviour": {
		{Name: "speed_walk", TypeString: "float"},
		{Name: "speed_run", TypeString: "float"},
		{Name: "speed_crouch", TypeString: "float"},
		{Name: "jump_impulse", TypeString: "float"},
		{Name: "jump_allowed", TypeString: "bool"},
		{Name: "facing_direction_bias", TypeString: "ValueRange"},
	},
	"ConfigHitbox": {
		{Name: "width", TypeString: "float"},
		{Name: "height", TypeString: "float"},
		{Name: "offset", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "is_sensor", TypeString: "bool"},
	},
	"ConfigHitParticle": {
		{Name: "material", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "count_min", TypeString: "int"},
		{Name: "count_max", TypeString: "int"},
		{Name: "size", TypeString: "ValueRange"},
		{Name: "lifetime", TypeString: "ValueRange"},
	},
	"ConfigDamageModel": {
		{Name: "hp", TypeString: "float"},
		{Name: "armor", TypeString: "float"},
		{Name: "fire_probability_of_ignition", TypeString: "float"},
		{Name: "poison_resistance", TypeString: "bool"},
		{Name: "melee_knockback_force_multiplier", TypeString: "float"},
		{Name: "falling_damages", TypeString: "bool"},
		{Name: "falling_damage_height_min", TypeString: "float"},
		{Name: "critical_damage_resistance", TypeString: "struct LensValue<float>"},
		{Name: "drop_items", TypeString: "bool"},
		{Name: "tags", TypeString: "class std::vector<class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >,class std::allocator<class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> > > >"},
	},
	"ConfigProjectile": {
		{Name: "speed", TypeString: "ValueRange"},
		{Name: "speed_offset", TypeString: "float"},
		{Name: "spread_degrees", TypeString: "float"},
		{Name: "lifetime", TypeString: "int"},
		{Name: "damage_by_type", TypeString: "struct LensValue<float>"},
		{Name: "explosion", TypeString: "ConfigExplosion"},
		{Name: "gravity", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "trail", TypeString: "UintArrayInline"},
	},
	"ConfigPotion": {
		{Name: "materials", TypeString: "class std::vector<class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >,class std::allocator<class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> > > >"},
		{Name: "fill_amount", TypeString: "ValueRange"},
		{Name: "throw_how_many_materials_at_once", TypeString: "int"},
		{Name: "is_potion", TypeString: "bool"},
		{Name: "stains", TypeString: "struct SpriteStains *"},
	},
	"ConfigLaser": {
		{Name: "length", TypeString: "float"},
		{Name: "width", TypeString: "float"},
		{Name: "damage_per_frame", TypeString: "float"},
		{Name: "color", TypeString: "unsigned int"},
		{Name: "reflects", TypeString: "bool"},
		{Name: "max_reflections", TypeString: "int"},
	},
	"ConfigAI": {
		{Name: "state", TypeString: "AIStateEnum"},
		{Name: "aggro_range", TypeString: "float"},
		{Name: "deaggro_range", TypeString: "float"},
		{Name: "preferred_distance", TypeString: "ValueRange"},
		{Name: "flee_on_low_hp", TypeString: "bool"},
		{Name: "flee_hp_percent", TypeString: "float"},
		{Name: "home_position", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "transform_home", TypeString: "struct ceng::math::CXForm<float>"},
	},
	"ConfigPickupable": {
		{Name: "is_pickable", TypeString: "bool"},
		{Name: "play_hover_animation", TypeString: "bool"},
		{Name: "play_hover_spring", TypeString: "bool"},
		{Name: "steal_alarm", TypeString: "bool"},
		{Name: "entity_wearing_it", TypeString: "struct SpriteStains *"},
	},
	"ConfigCursorVelocity": {
		{Name: "velocity", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "applied_this_frame", TypeString: "bool"},
	},
	"ConfigPhysicsJoint": {
		{Name: "joint_type", TypeString: "unsigned short"},
		{Name: "anchor_a", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "anchor_b", TypeString: "class ceng::math::CVector2<float>"},
		{Name: "collide_connected", TypeString: "bool"},
	},
	"ConfigItemActionComponent": {
		{Name: "action_id", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "mana_drain", TypeString: "float"},
		{Name: "cooldown_frames", TypeString: "int"},
		{Name: "custom_xforms", TypeString: "class std::vector<struct ceng::math::CXForm<float>,class std::allocator<struct ceng::math::CXForm<float> > >"},
	},
	"ConfigMaterialArea": {
		{Name: "radius", TypeString: "ValueRange"},
		{Name: "amount", TypeString: "ValueRange"},
		{Name: "material", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "uint32_array", TypeString: "UintArrayInline"},
	},
	"ConfigLuaHooks": {
		{Name: "on_damage_received", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "on_death", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "on_collision", TypeString: "class std::basic_string<char,class std::char_traits<char>,class std::allocator<char> >"},
		{Name: "execute_every_n_frame", TypeString: "int"},
	},
}

// Fields returns the ordered field list hard-coded for a named
// aggregate type, and whether the name is known to the table at all.
func Fields(name string) ([]schema.FieldSpec, bool) {
	fields, ok := table[name]
	return fields, ok
}

// Has reports whether name is a known ObjectMap entry, without
// allocating a copy of its field list — used by the type codec's
// final prefix-dispatch check.
func Has(name string) bool {
	_, ok := table[name]
	return ok
}
